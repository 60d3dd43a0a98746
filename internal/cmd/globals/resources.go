package globals

import "github.com/spf13/cobra"

// ResourceFlags holds flags for registry browsing commands.
type ResourceFlags struct {
	Search     string
	Governance string
	Deprecated bool
	Limit      int
}

// AddResourceFlags adds registry filter flags to a command.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	flags := &ResourceFlags{}

	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Search term matched against name and description")
	cmd.Flags().StringVar(&flags.Governance, "governance", "",
		"Filter by governance attribution (Genesis or a proposal id)")
	cmd.Flags().BoolVar(&flags.Deprecated, "deprecated", false,
		"Show only deprecated records")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}

// ParseResources extracts resource flags from a command.
// The command must have had AddResourceFlags called on it, otherwise this will panic.
func ParseResources(cmd *cobra.Command) *ResourceFlags {
	return &ResourceFlags{
		Search:     mustGetString(cmd, "search"),
		Governance: mustGetString(cmd, "governance"),
		Deprecated: mustGetBool(cmd, "deprecated"),
		Limit:      mustGetInt(cmd, "limit"),
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
