package notify

import (
	"io"
	"log"

	"github.com/ncruces/zenity"
)

// Desktop mirrors toasts as native desktop notifications.
type Desktop struct {
	Title  string
	Logger *log.Logger
	notify func(text string, opts ...zenity.Option) error
}

// NewDesktop returns a mirror that posts through zenity.
func NewDesktop(title string, logger *log.Logger) *Desktop {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Desktop{Title: title, Logger: logger, notify: zenity.Notify}
}

func (d *Desktop) Notify(t Toast) {
	icon := zenity.InfoIcon
	switch t.Kind {
	case Error:
		icon = zenity.ErrorIcon
	case Warning:
		icon = zenity.WarningIcon
	}
	go func() {
		if err := d.notify(t.Message, zenity.Title(d.Title), icon); err != nil {
			d.Logger.Printf("desktop notification: %v", err)
		}
	}()
}
