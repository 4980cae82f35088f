// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// tagwire is a command-line tool for working with tagwire-encoded
// data: encoding documents to the wire, decoding wire bytes back to
// documents, inspecting the tag structure of a payload, and
// computing payload digests.
//
// All commands read from stdin or from an optional trailing file
// path argument.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagwire/lib/digest"
	"github.com/bureau-foundation/tagwire/lib/dyn"
	"github.com/bureau-foundation/tagwire/lib/frame"
	"github.com/bureau-foundation/tagwire/lib/transcode"
	"github.com/bureau-foundation/tagwire/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 && args[0] == "--version" {
		fmt.Printf("tagwire %s\n", version.Full())
		return nil
	}
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		printUsage()
		return nil
	}

	command, rest := args[0], args[1:]
	switch command {
	case "encode":
		return runEncode(rest)
	case "decode":
		return runDecode(rest)
	case "inspect":
		return runInspect(rest)
	case "digest":
		return runDigest(rest)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `tagwire - compact tagged binary encoding tool

Usage:
  tagwire encode  [--from json|jsonc|yaml|cbor] [--compress none|lz4|zstd] [--hex] [file]
  tagwire decode  [--format json|yaml|cbor] [--framed] [--hex] [file]
  tagwire inspect [--framed] [--hex] [file]
  tagwire digest  [--framed] [--hex] [file]

Input is read from stdin unless a file path is given. With --hex,
binary input is treated as hex text (whitespace ignored).
`)
}

// readInput returns the input bytes from the trailing file argument
// or stdin. With hexInput, the bytes are hex-decoded first.
func readInput(args []string, hexInput bool) ([]byte, error) {
	var data []byte
	var err error
	switch len(args) {
	case 0:
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	case 1:
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("expected at most one file argument, got %d", len(args))
	}
	if hexInput {
		compact := strings.Join(strings.Fields(string(data)), "")
		data, err = hex.DecodeString(compact)
		if err != nil {
			return nil, fmt.Errorf("decoding hex input: %w", err)
		}
	}
	return data, nil
}

// readPayload reads input and unwraps the compression frame when
// requested.
func readPayload(args []string, hexInput, framed bool) ([]byte, error) {
	data, err := readInput(args, hexInput)
	if err != nil {
		return nil, err
	}
	if framed {
		return frame.Decompress(data)
	}
	return data, nil
}

func runEncode(args []string) error {
	flags := pflag.NewFlagSet("tagwire encode", pflag.ContinueOnError)
	from := flags.String("from", "json", "input format: json, jsonc, yaml, cbor")
	compress := flags.String("compress", "", "wrap output in a compression frame: none, lz4, zstd")
	hexOutput := flags.Bool("hex", false, "write output as hex text instead of raw bytes")
	if err := flags.Parse(args); err != nil {
		return err
	}

	input, err := readInput(flags.Args(), false)
	if err != nil {
		return err
	}

	var encoded []byte
	switch *from {
	case "json":
		encoded, err = transcode.FromJSON(input)
	case "jsonc":
		encoded, err = transcode.FromJSONC(input)
	case "yaml":
		encoded, err = transcode.FromYAML(input)
	case "cbor":
		encoded, err = transcode.FromCBOR(input)
	default:
		return fmt.Errorf("unknown input format %q", *from)
	}
	if err != nil {
		return err
	}

	if *compress != "" {
		algorithm, err := frame.ParseAlgorithm(*compress)
		if err != nil {
			return err
		}
		framed, err := frame.Compress(encoded, algorithm)
		if err != nil {
			return err
		}
		slog.Debug("framed payload",
			"algorithm", algorithm,
			"payload_bytes", len(encoded),
			"framed_bytes", len(framed))
		encoded = framed
	}

	return writeOutput(encoded, *hexOutput)
}

func runDecode(args []string) error {
	flags := pflag.NewFlagSet("tagwire decode", pflag.ContinueOnError)
	format := flags.String("format", "json", "output format: json, yaml, cbor")
	framed := flags.Bool("framed", false, "input is wrapped in a compression frame")
	hexInput := flags.Bool("hex", false, "treat input as hex text")
	if err := flags.Parse(args); err != nil {
		return err
	}

	payload, err := readPayload(flags.Args(), *hexInput, *framed)
	if err != nil {
		return err
	}
	tree, err := dyn.Decode(payload)
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		out, err := transcode.ToJSON(tree)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	case "yaml":
		out, err := transcode.ToYAML(tree)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	case "cbor":
		out, err := transcode.ToCBOR(tree)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	default:
		return fmt.Errorf("unknown output format %q", *format)
	}
}

func runInspect(args []string) error {
	flags := pflag.NewFlagSet("tagwire inspect", pflag.ContinueOnError)
	framed := flags.Bool("framed", false, "input is wrapped in a compression frame")
	hexInput := flags.Bool("hex", false, "treat input as hex text")
	plain := flags.Bool("plain", false, "disable styling")
	if err := flags.Parse(args); err != nil {
		return err
	}

	payload, err := readPayload(flags.Args(), *hexInput, *framed)
	if err != nil {
		return err
	}
	tree, err := dyn.Decode(payload)
	if err != nil {
		return err
	}

	renderer := newRenderer(!*plain)
	fmt.Print(renderer.render(tree))
	fmt.Printf("%d bytes, digest %s\n", len(payload), digest.Format(digest.Payload(payload)))
	return nil
}

func runDigest(args []string) error {
	flags := pflag.NewFlagSet("tagwire digest", pflag.ContinueOnError)
	framed := flags.Bool("framed", false, "input is wrapped in a compression frame")
	hexInput := flags.Bool("hex", false, "treat input as hex text")
	if err := flags.Parse(args); err != nil {
		return err
	}

	payload, err := readPayload(flags.Args(), *hexInput, *framed)
	if err != nil {
		return err
	}
	fmt.Println(digest.Format(digest.Payload(payload)))
	return nil
}

func writeOutput(data []byte, hexOutput bool) error {
	if hexOutput {
		fmt.Println(hex.EncodeToString(data))
		return nil
	}
	_, err := os.Stdout.Write(data)
	return err
}
