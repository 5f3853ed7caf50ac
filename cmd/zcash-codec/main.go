// zcash-codec CLI - Zcash transaction and address codec
//
// Example usage:
//
//	# Decode a raw transaction and print its summary
//	zcash-codec decode-tx 050000800a27a726b4d0d6c2...
//
//	# Compute a transaction id
//	zcash-codec txid 0400008085202f89...
//
//	# Inspect an address
//	zcash-codec parse-address u1...
//
//	# Build a unified address from raw receivers
//	zcash-codec unified-address --network test --orchard <hex> --p2pkh <hex>
//
//	# Parse a ZIP 321 payment request
//	zcash-codec parse-uri "zcash:u1...?amount=1.5"
package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/suffix-labs/zcash-codec/pkg/api"
)

const version = "v0.1.0"

var errUsage = errors.New("usage")

func main() {
	cfg, err := newConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	api.SetLogger(logger)

	os.Exit(run(os.Args[1:], cfg, logger, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, cfg config, logger logrus.FieldLogger, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command, rest := args[0], args[1:]
	var err error
	switch command {
	case "decode-tx":
		err = cmdDecodeTx(rest, stdout)
	case "txid":
		err = cmdTxID(rest, stdout)
	case "parse-address":
		err = cmdParseAddress(rest, stdout)
	case "unified-address":
		err = cmdUnifiedAddress(rest, cfg, stdout)
	case "parse-uri":
		err = cmdParseURI(rest, stdout)
	case "version":
		fmt.Fprintf(stdout, "zcash-codec %s\n", version)
	case "help", "--help", "-h":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return 1
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printUsage(stderr)
		return 2
	}
	if err != nil {
		logger.WithField("command", command).Debug("command failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `zcash-codec - Zcash transaction and address codec

Usage:
  zcash-codec <command> [options]

Commands:
  decode-tx <hex>              Decode a raw transaction and print a summary
  txid <hex>                   Print the transaction id of a raw transaction
  parse-address <address>      Decode a transparent, Sapling or unified address
  unified-address [options]    Build a unified address from hex receivers
      -n, --network            main or test (default: $ZCASH_CODEC_NETWORK)
          --p2pkh <hex>        20-byte P2PKH key hash
          --p2sh <hex>         20-byte P2SH script hash
          --sapling <hex>      43-byte Sapling receiver
          --orchard <hex>      43-byte Orchard receiver
  parse-uri <uri>              Parse a ZIP 321 payment request URI
  version                      Show version information
  help                         Show this help message

Environment:
  ZCASH_CODEC_NETWORK          default network (main)
  ZCASH_CODEC_LOG_LEVEL        log level (warn)
  ZCASH_CODEC_LOG_FORMAT       text or json (text)`)
}

func singleArg(args []string, name string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected exactly one %s argument", errUsage, name)
	}
	return args[0], nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdDecodeTx(args []string, stdout io.Writer) error {
	txHex, err := singleArg(args, "transaction hex")
	if err != nil {
		return err
	}
	tx, err := api.DecodeTransactionHex(txHex)
	if err != nil {
		return err
	}
	summary, err := api.SummarizeTransaction(tx)
	if err != nil {
		return err
	}
	return printJSON(stdout, summary)
}

func cmdTxID(args []string, stdout io.Writer) error {
	txHex, err := singleArg(args, "transaction hex")
	if err != nil {
		return err
	}
	tx, err := api.DecodeTransactionHex(txHex)
	if err != nil {
		return err
	}
	id, err := api.TransactionID(tx)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, id)
	return nil
}

func cmdParseAddress(args []string, stdout io.Writer) error {
	addr, err := singleArg(args, "address")
	if err != nil {
		return err
	}
	info, err := api.ParseAddress(addr)
	if err != nil {
		return err
	}
	return printJSON(stdout, info)
}

type unifiedAddressOptions struct {
	Network string `short:"n" long:"network" description:"main or test"`
	P2PKH   string `long:"p2pkh" value-name:"HEX" description:"20-byte P2PKH key hash"`
	P2SH    string `long:"p2sh" value-name:"HEX" description:"20-byte P2SH script hash"`
	Sapling string `long:"sapling" value-name:"HEX" description:"43-byte Sapling receiver"`
	Orchard string `long:"orchard" value-name:"HEX" description:"43-byte Orchard receiver"`
}

func cmdUnifiedAddress(args []string, cfg config, stdout io.Writer) error {
	var opts unifiedAddressOptions
	parser := flags.NewParser(&opts, flags.PassDoubleDash)
	parser.Name = "zcash-codec unified-address"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", errUsage, rest)
	}

	network := opts.Network
	if network == "" {
		network = cfg.Network
	}
	ua, err := api.CreateUnifiedAddress(network, api.UnifiedReceivers{
		P2PKH:   opts.P2PKH,
		P2SH:    opts.P2SH,
		Sapling: opts.Sapling,
		Orchard: opts.Orchard,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, ua)
	return nil
}

func cmdParseURI(args []string, stdout io.Writer) error {
	uri, err := singleArg(args, "URI")
	if err != nil {
		return err
	}
	req, err := api.ParsePaymentRequest(uri)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Payment Request:")
	fmt.Fprintf(stdout, "  Payments: %d\n\n", len(req.Payments))

	for i, payment := range req.Payments {
		fmt.Fprintf(stdout, "Payment %d:\n", i+1)
		fmt.Fprintf(stdout, "  Address: %s\n", payment.Address)
		fmt.Fprintf(stdout, "  Network: %s\n", payment.Address.Network())

		if payment.Amount != nil {
			fmt.Fprintf(stdout, "  Amount:  %s ZEC\n", payment.Amount)
		} else {
			fmt.Fprintln(stdout, "  Amount:  (user specified)")
		}
		if payment.Memo != nil {
			fmt.Fprintf(stdout, "  Memo:    %s\n", hex.EncodeToString(payment.Memo))
		}
		if payment.Label != "" {
			fmt.Fprintf(stdout, "  Label:   %s\n", payment.Label)
		}
		if payment.Message != "" {
			fmt.Fprintf(stdout, "  Message: %s\n", payment.Message)
		}
		fmt.Fprintln(stdout)
	}

	fmt.Fprintf(stdout, "Re-encoded URI:\n%s\n", req.Encode())
	return nil
}
