package cmd

import (
	"context"
	"encoding"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/namedlogs/config"
	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/pkg"
	"github.com/ardnew/namedlogs/profile"
)

// Init generates a configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	doc := configFrom(ctx).Document(i.flags(ktx))

	err = config.Write(ctx, confPath, doc, i.Force)
	if err != nil {
		e := ErrWriteConfig.With(slog.String("file", confPath))
		if errors.Is(err, pkg.ErrConfigExists) {
			return e.Hint("use --force to overwrite").Wrap(ErrFileExists)
		}

		return e.Wrap(err)
	}

	log.DebugContext(ctx,
		"initialized configuration file",
		slog.String("path", confPath),
		slog.Int("keys", len(doc)),
	)

	return nil
}

// flags returns the values of the configurable flags that are set.
func (i *Init) flags(ktx *kong.Context) map[string]any {
	prefixIgnore := []string{"help", profile.Tag}
	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagValue(ktx.FlagValue(flag)); val != nil {
			values[flag.Name] = val
		}
	}

	return values
}

// flagValue returns the configuration file form of a flag value, or nil if
// the value is unset or empty.
func flagValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil

	case bool:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v

	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil || len(text) == 0 {
			return nil
		}

		return string(text)
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.String:
		if rv.Len() == 0 {
			return nil
		}

		return rv.String()

	case reflect.Slice:
		if rv.Len() == 0 {
			return nil
		}

		items := make([]any, 0, rv.Len())
		for n := range rv.Len() {
			if item := flagValue(rv.Index(n).Interface()); item != nil {
				items = append(items, item)
			}
		}

		return items
	}

	return fmt.Sprint(val)
}
