package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/darksharpness/int2048/internal/ui"
)

// setCustomUsage configures the flag set with a colored usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// Respect NO_COLOR even before app initialization
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		fmt.Fprintf(out, "\n%sint2048%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Arbitrary-precision integer calculator.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s -e '(2+3)*-7 / 4'\n", fs.Name())
		fmt.Fprintf(out, "  %s -f expressions.txt\n", fs.Name())
		fmt.Fprintf(out, "  %s [--repl | --tui | --calibrate]\n\n", fs.Name())
		fmt.Fprintf(out, "%sOperators:%s + - * / %% ( )  unary -/+\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "%sFunctions:%s inc dec abs neg cmp shl shr digits\n\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "%sFlags:%s\n", t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if len(f.Name) > 1 {
				flagSig = "--" + f.Name
			}
			if len(name) > 0 {
				flagSig += " " + name
			}

			fmt.Fprintf(out, "  %s%-28s%s %s", t.Primary, flagSig, t.Reset, usage)

			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEvery flag can also be set through an %s<NAME> environment variable.\n\n", EnvPrefix)
	}
}
