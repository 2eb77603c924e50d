// statusdump decodes a wire-encoded VM status blob and prints a JSON
// rendering, for poking at statuses captured from logs or audit trails.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quillvm/quill-go/model/vmstatus"
	"github.com/quillvm/quill-go/model/vmstatus/wire"
)

var (
	flagHex   string
	flagInput string
)

var rootCmd = &cobra.Command{
	Use:   "statusdump [hex-blob]",
	Short: "Decode a wire-encoded VM status and print it as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runE,
}

func init() {
	rootCmd.Flags().StringVar(&flagHex, "hex", "",
		"hex-encoded status blob")

	rootCmd.Flags().StringVar(&flagInput, "input", "",
		"path to a file holding the raw status blob")
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("statusdump failed")
	}
}

func runE(cmd *cobra.Command, args []string) error {
	data, err := readBlob(args)
	if err != nil {
		return err
	}

	status, err := wire.UnmarshalVMStatus(data)
	if err != nil {
		return fmt.Errorf("could not decode vm status: %w", err)
	}

	out, err := json.MarshalIndent(renderStatus(status), "", "  ")
	if err != nil {
		return fmt.Errorf("could not render vm status: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func readBlob(args []string) ([]byte, error) {
	hexBlob := flagHex
	if len(args) > 0 {
		if flagHex != "" {
			return nil, fmt.Errorf("the hex argument and --hex are mutually exclusive")
		}
		hexBlob = args[0]
	}

	switch {
	case hexBlob != "" && flagInput != "":
		return nil, fmt.Errorf("a hex blob and --input are mutually exclusive")
	case hexBlob != "":
		data, err := hex.DecodeString(strings.TrimSpace(hexBlob))
		if err != nil {
			return nil, fmt.Errorf("could not decode hex input: %w", err)
		}
		return data, nil
	case flagInput != "":
		data, err := os.ReadFile(flagInput)
		if err != nil {
			return nil, fmt.Errorf("could not read input file: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("a hex blob, --hex, or --input is required")
	}
}

type statusView struct {
	Branch       string             `json:"branch"`
	Succeeded    bool               `json:"succeeded"`
	Validation   string             `json:"validation,omitempty"`
	Invariant    string             `json:"invariant_violation,omitempty"`
	Binary       string             `json:"binary,omitempty"`
	Execution    *executionView     `json:"execution,omitempty"`
	Verification []verificationView `json:"verification,omitempty"`
	// FindingCount distinguishes a clean verification report from the
	// other branches, where the verification field is absent entirely.
	FindingCount *int `json:"finding_count,omitempty"`
}

type executionView struct {
	Kind          string `json:"kind"`
	Runtime       string `json:"runtime,omitempty"`
	AssertionCode uint64 `json:"assertion_code,omitempty"`
	Arithmetic    string `json:"arithmetic,omitempty"`
	Reference     string `json:"reference,omitempty"`
}

type verificationView struct {
	Kind      string `json:"kind"`
	ModuleIdx uint32 `json:"module_idx"`
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message,omitempty"`
}

func renderStatus(status vmstatus.VMStatus) statusView {
	view := statusView{
		Branch:    status.Kind().String(),
		Succeeded: status.Succeeded(),
	}

	switch status.Kind() {
	case vmstatus.VMStatusKindValidation:
		code, _ := status.Validation()
		view.Validation = code.String()
	case vmstatus.VMStatusKindVerification:
		list, _ := status.Verification()
		count := len(list)
		view.FindingCount = &count
		for _, entry := range list {
			view.Verification = append(view.Verification, verificationView{
				Kind:      entry.Kind.String(),
				ModuleIdx: entry.ModuleIdx,
				ErrorKind: entry.ErrorKind.String(),
				Message:   entry.Message,
			})
		}
	case vmstatus.VMStatusKindInvariantViolation:
		code, _ := status.InvariantViolation()
		view.Invariant = code.String()
	case vmstatus.VMStatusKindBinary:
		code, _ := status.Binary()
		view.Binary = code.String()
	case vmstatus.VMStatusKindExecution:
		execution, _ := status.Execution()
		ev := executionView{Kind: execution.Kind().String()}
		switch execution.Kind() {
		case vmstatus.ExecutionKindRuntime:
			code, _ := execution.Runtime()
			ev.Runtime = code.String()
		case vmstatus.ExecutionKindAssertionFailure:
			ev.AssertionCode, _ = execution.AssertionCode()
		case vmstatus.ExecutionKindArithmeticError:
			kind, _ := execution.Arithmetic()
			ev.Arithmetic = kind.String()
		case vmstatus.ExecutionKindDynamicReferenceError:
			kind, _ := execution.Reference()
			ev.Reference = kind.String()
		}
		view.Execution = &ev
	}

	return view
}
