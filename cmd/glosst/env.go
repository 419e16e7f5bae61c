package main

import (
	"fmt"
	"strings"

	"github.com/oukeidos/glosst/internal/auth"
	"github.com/spf13/cobra"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage backend credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd)
		},
	}

	cmd.SetUsageTemplate(envUsageTemplate)
	cmd.AddCommand(
		newEnvSetupCmd(),
		newEnvDeleteCmd(),
		newEnvStatusCmd(),
	)
	return cmd
}

func newEnvSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Save the Gemini API key to the OS keychain (prompt only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvSetup(cmd)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newEnvDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the Gemini API key from the OS keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deleteKey(); err != nil {
				return fmt.Errorf("error deleting key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted Gemini API key from keychain.")
			return nil
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newEnvStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show credential status (default if no action given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

var (
	saveKey          = auth.SaveKey
	deleteKey        = auth.DeleteKey
	cloudCredentials = auth.CloudCredentials
)

func runEnvSetup(cmd *cobra.Command) error {
	promptKey, err := promptForKey("Gemini API Key: ")
	if err != nil {
		return fmt.Errorf("error reading key: %w", err)
	}
	key := strings.TrimSpace(promptKey)
	if key == "" {
		return fmt.Errorf("API key is required for setup")
	}
	if err := saveKey(key); err != nil {
		return fmt.Errorf("error saving key: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Saved Gemini API key to keychain.")
	return nil
}

func runEnvStatus(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	switch {
	case getStatus():
		fmt.Fprintln(out, "Gemini API Key: Found (source=Keychain)")
	case hasEnvKey():
		fmt.Fprintln(out, "Gemini API Key: Found (source=Environment Variable; disabled by default, use --allow-env)")
	default:
		fmt.Fprintln(out, "Gemini API Key: Not Found (keychain empty, env not set)")
	}

	if path, source := cloudCredentials(""); path != "" {
		fmt.Fprintf(out, "Cloud Credentials: %s (source=%s)\n", path, source)
	} else {
		fmt.Fprintln(out, "Cloud Credentials: Application Default Credentials")
	}
	return nil
}

func hasEnvKey() bool {
	key, ok := getEnvKey()
	return ok && key != ""
}
