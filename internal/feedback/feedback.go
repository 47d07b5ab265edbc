// Package feedback writes formatted items in the shape the caller wants:
// Alfred script-filter JSON, plain JSON/YAML, or styled terminal text.
package feedback

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c2nes/alfred-time/internal/format"
)

// Emitter writes one batch of items.
type Emitter interface {
	Emit(w io.Writer, items []format.Item) error
}

type Kind string

const (
	KindAuto   Kind = "auto"
	KindAlfred Kind = "alfred"
	KindJSON   Kind = "json"
	KindYAML   Kind = "yaml"
	KindText   Kind = "text"
)

// DefaultIcon is relative to the workflow directory.
const DefaultIcon = "icon.png"

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindAuto, nil
	case KindAuto, KindAlfred, KindJSON, KindYAML, KindText:
		return k, nil
	}
	return "", fmt.Errorf("unknown output %q (want auto, alfred, json, yaml or text)", s)
}

type Options struct {
	// BundleID prefixes Alfred UIDs when set.
	BundleID string
	Icon     string
	// Terminal selects text over Alfred JSON for KindAuto.
	Terminal bool
}

// New returns the emitter for kind.
func New(kind Kind, opts Options) (Emitter, error) {
	if kind == KindAuto {
		kind = KindAlfred
		if opts.Terminal {
			kind = KindText
		}
	}
	switch kind {
	case KindAlfred:
		icon := opts.Icon
		if icon == "" {
			icon = DefaultIcon
		}
		return &Alfred{BundleID: opts.BundleID, Icon: icon}, nil
	case KindJSON:
		return JSON{}, nil
	case KindYAML:
		return YAML{}, nil
	case KindText:
		return Text{}, nil
	}
	return nil, fmt.Errorf("unknown output %q", kind)
}

// argString renders an item argument for hosts that only take strings.
func argString(arg any) string {
	switch v := arg.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return fmt.Sprint(arg)
}
