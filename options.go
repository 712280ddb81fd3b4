package harsight

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Options configure the analysis service.
type Options struct {
	// Workers bounds how many interactions AnalyzeBatch processes
	// concurrently. (defaults to the HARSIGHT_WORKERS environment
	// variable, or the number of CPUs if not set)
	Workers int

	// MaxDepth bounds the recursive body walks; deeper values pass
	// through untouched. (defaults to the HARSIGHT_MAX_DEPTH environment
	// variable, or 64 if not set)
	MaxDepth int

	// OnError receives per-interaction analysis errors as they happen,
	// in addition to their structured entries in batch results.
	// (by default errors are logged to os.Stderr)
	OnError func(error)
}

func (o *Options) parse() (*Options, error) {
	if o == nil {
		o = &Options{}
	} else {
		copy := *o
		o = &copy
	}

	godotenv.Load()

	if o.Workers == 0 {
		if v := os.Getenv("HARSIGHT_WORKERS"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("harsight: invalid HARSIGHT_WORKERS %q: %w", v, err)
			}
			o.Workers = n
		}
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Workers < 0 {
		return nil, fmt.Errorf("harsight: Workers must be positive, got %d", o.Workers)
	}

	if o.MaxDepth == 0 {
		if v := os.Getenv("HARSIGHT_MAX_DEPTH"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("harsight: invalid HARSIGHT_MAX_DEPTH %q: %w", v, err)
			}
			o.MaxDepth = n
		}
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = 64
	}
	if o.MaxDepth < 0 {
		return nil, fmt.Errorf("harsight: MaxDepth must be positive, got %d", o.MaxDepth)
	}

	if o.OnError == nil {
		o.OnError = func(e error) {
			fmt.Fprintln(os.Stderr, e)
		}
	}

	return o, nil
}
