package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"torus-ca/internal/rules"
)

type ruleInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available transition rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := listRules(rules.DefaultRegistry())
			var b strings.Builder
			for _, info := range infos {
				fmt.Fprintf(&b, "%-22s %s\n", info.ID, info.Name)
			}
			return rootOpts.formatter(cmd).Success(infos, b.String())
		},
	}
}

func listRules(reg *rules.Registry) []ruleInfo {
	var infos []ruleInfo
	for _, r := range rules.All() {
		infos = append(infos, ruleInfo{ID: r.String(), Name: r.Name()})
	}
	for _, d := range reg.Descriptors() {
		r := rules.NewCustom(d)
		infos = append(infos, ruleInfo{ID: r.String(), Name: r.Name(), Custom: true})
	}
	return infos
}
