package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newEncryptCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [text]",
		Short: "Encrypts text with the session key and prints base64(IV ‖ ciphertext ‖ tag)",
		Long:  "Encrypts the argument, or stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := inputText(cmd, args, false)
			if err != nil {
				return err
			}

			session, err := opts.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer session.Clear()

			ciphertext, err := session.EncryptText(cmd.Context(), plaintext)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ciphertext)
			return nil
		},
	}
}

func newDecryptCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt [ciphertext]",
		Short: "Decrypts text produced by 'blindx encrypt'",
		Long:  "Decrypts the argument, or stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ciphertext, err := inputText(cmd, args, true)
			if err != nil {
				return err
			}

			session, err := opts.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer session.Clear()

			plaintext, err := session.DecryptText(cmd.Context(), ciphertext)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), plaintext)
			return nil
		},
	}
}

// inputText returns the single argument or all of stdin. Ciphertext input
// has surrounding whitespace removed since base64 never contains any.
func inputText(cmd *cobra.Command, args []string, trim bool) (string, error) {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if trim {
		text = strings.TrimSpace(text)
	}
	return text, nil
}
