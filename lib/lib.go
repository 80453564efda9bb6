/*package lib contains configuration and utility functions shared by the
music-eos command. Almost all of the heavy lifting is done by lib/'s
subpackages; this package just gets user input into a form they can use.
*/
package lib

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Args stores the configuration of one music-eos run.
type Args struct {
	// EosID selects the EOS family. See lib/eos.New for the valid ids.
	EosID int
	// TablePath is the base data directory; table families read their
	// files from subdirectories of it (e.g. <TablePath>/EOS/hotQCD). If it
	// is left empty, the HYDROPROGRAMPATH environment variable is used,
	// and failing that the current directory.
	TablePath string
	// Threads is the number of threads used by the "eval" mode. -1 means
	// one per core.
	Threads int
}

// ParseCommandLine parses the command line arguments and returns the mode
// music-eos is being run in, the name of the config file, and the trailing
// arguments. Expects that the arguments are presented in the order:
// $ music-eos <mode> <config file> [args...]
func ParseCommandLine() (mode, configFile string, rest []string) {
	if len(os.Args) < 2 {
		return "help", "", nil
	}
	mode = os.Args[1]
	if len(os.Args) >= 3 {
		configFile = os.Args[2]
	}
	if len(os.Args) > 3 {
		rest = os.Args[3:]
	}
	return mode, configFile, rest
}

// ParseConfigFile parses arguments from a TOML config file and fills in
// defaults for anything the user didn't set.
func ParseConfigFile(fileName string) (*Args, error) {
	args := &Args{ Threads: -1 }
	_, err := toml.DecodeFile(fileName, args)
	if err != nil {
		return nil, fmt.Errorf("The config file %s cannot be parsed. The "+
			"underlying error is: %s", fileName, err.Error())
	}

	if args.TablePath == "" {
		if env := os.Getenv("HYDROPROGRAMPATH"); env != "" {
			args.TablePath = env
		} else {
			args.TablePath = "."
		}
	}

	return args, nil
}
