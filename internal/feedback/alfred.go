package feedback

import (
	"encoding/json"
	"io"
	"strconv"

	aw "github.com/deanishe/awgo"

	"github.com/c2nes/alfred-time/internal/format"
)

// Alfred writes script-filter JSON.
type Alfred struct {
	BundleID string
	Icon     string
}

// uid keeps Alfred's learned ordering stable per position and per workflow.
func (a *Alfred) uid(index int) string {
	if a.BundleID == "" {
		return strconv.Itoa(index)
	}
	return a.BundleID + "-" + strconv.Itoa(index)
}

// Feedback builds the awgo feedback for items without writing it.
func (a *Alfred) Feedback(items []format.Item) *aw.Feedback {
	fb := aw.NewFeedback()
	icon := &aw.Icon{Value: a.Icon}
	for _, item := range items {
		fb.NewItem(item.Title).
			Subtitle(item.Subtitle).
			Arg(argString(item.Arg)).
			UID(a.uid(item.UID)).
			Copytext(item.Title).
			Largetype(item.Title).
			Icon(icon).
			Valid(true)
	}
	return fb
}

func (a *Alfred) Emit(w io.Writer, items []format.Item) error {
	data, err := json.Marshal(a.Feedback(items))
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
