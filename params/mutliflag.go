package params

import (
	"flag"
	"strings"

	"github.com/pkg/errors"
)

type multiflag struct {
	name             string
	values           []string
	duplicateControl map[string]struct{}
}

func (f *multiflag) String() string {
	return strings.Join(f.values, ",")
}

func (f *multiflag) Set(s string) error {
	if err := checkDuplicated(s, f.duplicateControl, f.name); err != nil {
		return err
	}
	f.values = append(f.values, s)
	f.duplicateControl[s] = struct{}{}
	return nil
}

func (f *multiflag) Get() any { return f.values }

// multiVal defines a repeatable flag that rejects duplicated values.
func multiVal(flagSet *flag.FlagSet, name string, defValues []string, usage string) *[]string {
	duplicateControl := map[string]struct{}{}
	for _, defValue := range defValues {
		if err := checkDuplicated(defValue, duplicateControl, name); err != nil {
			panic(err)
		}
		duplicateControl[defValue] = struct{}{}
	}
	values := multiflag{name: name, values: defValues, duplicateControl: duplicateControl}
	flagSet.Var(&values, name, usage)
	return &values.values
}

func checkDuplicated(value string, duplicateControl map[string]struct{}, name string) error {
	if _, ok := duplicateControl[value]; ok {
		return errors.Errorf("duplicated value %v of parameter %v", value, name)
	}
	return nil
}
