package main

import (
	"fmt"
	"strconv"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/andrewgordeev/music-eos/lib"
	"github.com/andrewgordeev/music-eos/lib/eos"
)

func main() {
	mode, configFile, rest := lib.ParseCommandLine()

	switch mode {
	case "help":
		PrintHelp()
	case "check":
		Check(configFile)
	case "eval":
		Eval(configFile, rest)
	default:
		lib.ExternalErrorf(
			"You attempted to run music-eos in the mode '%s', but the only "+
				"valid modes are 'help', 'check', and 'eval'.", mode,
		)
	}
}

// PrintHelp prints usage information.
func PrintHelp() {
	fmt.Print(`music-eos evaluates the equations of state used by relativistic
hydrodynamic simulations.

Usage:
    music-eos help
    music-eos check <config file>
    music-eos eval <config file> <e1> [e2 ...]

"check" loads the configured EOS and prints table diagnostics. "eval"
evaluates pressure and temperature at the given energy densities (1/fm^4).

The config file is TOML with the variables EosID, TablePath, and Threads.
`)
}

// loadEos parses the config file, constructs the configured EOS family, and
// initializes it. Any failure along the way is fatal: without a valid EOS
// there is nothing useful left to do.
func loadEos(configFile string) (*lib.Args, eos.EOS) {
	if configFile == "" {
		lib.ExternalErrorf("No config file was given. Run 'music-eos help' " +
			"for usage.")
	}

	args, err := lib.ParseConfigFile(configFile)
	if err != nil {
		lib.ExternalErrorf(err.Error())
	}

	e, err := eos.New(args.EosID, args.TablePath)
	if err != nil {
		lib.ExternalErrorf(err.Error())
	}

	err = e.Initialize()
	if err != nil {
		lib.ExternalErrorf("The EOS with id %d could not be initialized. %s",
			args.EosID, err.Error())
	}

	return args, e
}

// Check runs music-eos's "check" mode, which loads the configured EOS and
// prints diagnostics about its tables.
func Check(configFile string) {
	_, e := loadEos(configFile)

	fmt.Printf("EOS id %d, epsMax = %g 1/fm^4\n", e.ID(), e.EpsMax())

	if hq, ok := e.(*eos.HotQCD); ok {
		st := hq.Store()
		fmt.Printf("table: %d samples, eBound = %g 1/fm^4, eSpacing = %g "+
			"1/fm^4\n", st.Len(), st.Bound(), st.Spacing())

		for _, name := range st.Fields() {
			row, err := st.FieldRow(name, 0)
			if err != nil {
				lib.InternalErrorf("A registered field, '%s', could not be "+
					"read back: %s", name, err.Error())
			}
			fmt.Printf("%-12s min = %-12.6g max = %-12.6g mean = %-12.6g "+
				"monotonic = %t\n", name, floats.Min(row), floats.Max(row),
				stat.Mean(row, nil), isIncreasing(row))
		}
	}

	fmt.Println("No errors detected.")
}

// Eval runs music-eos's "eval" mode, which evaluates pressure and
// temperature at each energy density given on the command line. Lookups are
// read-only once the EOS is initialized, so they are spread freely across
// threads.
func Eval(configFile string, rest []string) {
	args, e := loadEos(configFile)
	lib.SetThreads(args.Threads)

	if len(rest) == 0 {
		lib.ExternalErrorf("The eval mode requires at least one energy " +
			"density argument.")
	}

	es := make([]float64, len(rest))
	for i := range rest {
		x, err := strconv.ParseFloat(rest[i], 64)
		if err != nil {
			lib.ExternalErrorf("Argument %d, '%s', is not a number.",
				i+1, rest[i])
		}
		es[i] = x
	}

	p, T := make([]float64, len(es)), make([]float64, len(es))

	wg := &sync.WaitGroup{ }
	wg.Add(len(es))
	for i := range es {
		go func(i int) {
			defer wg.Done()

			var err error
			p[i], err = e.Pressure(es[i], eos.Charges{ }, 0)
			if err == nil {
				T[i], err = e.Temperature(es[i], eos.Charges{ }, 0)
			}
			if err != nil {
				// Lookups can't fail once Initialize succeeds, so this is
				// a code bug, not user error.
				lib.InternalErrorf("Lookup at e = %g failed: %s",
					es[i], err.Error())
			}
		}(i)
	}
	wg.Wait()

	fmt.Println("# e [1/fm^4]  P [1/fm^4]  T [1/fm]")
	for i := range es {
		fmt.Printf("%.8g %.8g %.8g\n", es[i], p[i], T[i])
	}
}

func isIncreasing(y []float64) bool {
	for i := 1; i < len(y); i++ {
		if y[i] < y[i-1] {
			return false
		}
	}
	return true
}
