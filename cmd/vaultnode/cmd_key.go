package main

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func keyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "manages secp256k1 keys signing the transactions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "creates a new key and prints it with its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := crypto.GenerateKey()
			if err != nil {
				return errors.WithStack(err)
			}
			cmd.Println("key     :", hex.EncodeToString(crypto.FromECDSA(k)))
			cmd.Println("address :", crypto.PubkeyToAddress(k.PublicKey).String())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show [keyhex]",
		Short: "prints the address of the key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := crypto.HexToECDSA(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				return errors.WithStack(err)
			}
			cmd.Println("address :", crypto.PubkeyToAddress(k.PublicKey).String())
			return nil
		},
	})
	return cmd
}
