package handle

import (
	"github.com/spf13/cobra"
)

// Execute runs root and reports its failure. Cobra's own error and usage
// printing is silenced; argument errors are reported as usage errors and the
// root's persistent "verbose" flag selects verbose reports. Errors returned
// by the commands' run hooks are reported by their own kind.
func (r *Reporter) Execute(root *cobra.Command) int {
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetFlagErrorFunc(FlagErrorFunc)
	markCommandErrors(root)

	rep := r
	if r.program == "" {
		clone := *r
		clone.program = root.Name()
		rep = &clone
	}
	return rep.Invoke(func() error {
		return AsUsage(root.Execute())
	}, VerboseFrom(root.PersistentFlags()))
}
