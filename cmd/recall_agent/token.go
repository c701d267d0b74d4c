package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vualidon/food-recall-agent/internal/config"
	"github.com/vualidon/food-recall-agent/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an operator token for the REST API",
	Long:  "Generate a signed JWT for calling the API's pipeline trigger. Requires RECALL_JWT_SECRET; the server validates tokens against the same secret.",
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "Token subject identifying the caller")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenSubject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
