package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/wasmregistry/codemap/pkg/check"
	"github.com/wasmregistry/codemap/pkg/constants"
)

// newVerifyTestCommand builds a detached command carrying the verify
// flag set, so option assembly can be tested without running cobra.
func newVerifyTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "verify"}
	addVerifyFlags(cmd)
	return cmd
}

func applyOptions(t *testing.T, opts []check.Option) *check.Options {
	t.Helper()
	o := &check.Options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			t.Fatalf("applying option: %v", err)
		}
	}
	return o
}

func TestVerifyOptions(t *testing.T) {
	setConfigDefaults()

	t.Run("defaults to mainnet only", func(t *testing.T) {
		cmd := newVerifyTestCommand()

		opts, err := verifyOptions(cmd, check.ModeVerify)
		if err != nil {
			t.Fatalf("verifyOptions() error = %v", err)
		}

		o := applyOptions(t, opts)
		if o.Mode != check.ModeVerify {
			t.Errorf("Mode = %v, want %v", o.Mode, check.ModeVerify)
		}
		if o.RegistryPath != constants.DefaultRegistryPath {
			t.Errorf("RegistryPath = %q, want %q", o.RegistryPath, constants.DefaultRegistryPath)
		}
		if o.Mainnet.REST != constants.DefaultMainnetREST {
			t.Errorf("Mainnet.REST = %q, want %q", o.Mainnet.REST, constants.DefaultMainnetREST)
		}
		if o.Testnet != nil {
			t.Errorf("Testnet = %v, want nil", o.Testnet)
		}
		if o.SkipGovernance {
			t.Error("SkipGovernance = true, want false")
		}
	})

	t.Run("network all enables the testnet", func(t *testing.T) {
		cmd := newVerifyTestCommand()
		if err := cmd.Flags().Set("network", "all"); err != nil {
			t.Fatal(err)
		}

		opts, err := verifyOptions(cmd, check.ModeAll)
		if err != nil {
			t.Fatalf("verifyOptions() error = %v", err)
		}

		o := applyOptions(t, opts)
		if o.Testnet == nil {
			t.Fatal("Testnet = nil, want configured endpoint")
		}
		if o.Testnet.REST != constants.DefaultTestnetREST {
			t.Errorf("Testnet.REST = %q, want %q", o.Testnet.REST, constants.DefaultTestnetREST)
		}
	})

	t.Run("skip-governance is carried through", func(t *testing.T) {
		cmd := newVerifyTestCommand()
		if err := cmd.Flags().Set("skip-governance", "true"); err != nil {
			t.Fatal(err)
		}

		opts, err := verifyOptions(cmd, check.ModeVerify)
		if err != nil {
			t.Fatalf("verifyOptions() error = %v", err)
		}

		o := applyOptions(t, opts)
		if !o.SkipGovernance {
			t.Error("SkipGovernance = false, want true")
		}
	})

	t.Run("unknown network is rejected", func(t *testing.T) {
		cmd := newVerifyTestCommand()
		if err := cmd.Flags().Set("network", "devnet"); err != nil {
			t.Fatal(err)
		}

		_, err := verifyOptions(cmd, check.ModeVerify)
		if err == nil {
			t.Fatal("verifyOptions() error = nil, want unknown network error")
		}
		if !strings.Contains(err.Error(), "devnet") {
			t.Errorf("error %q does not name the network", err)
		}
	})
}
