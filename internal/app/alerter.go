// internal/app/alerter.go
package app

import (
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/ui/widget"
)

// alerter shows alerts in the popup and, when desktop notifications are
// enabled, mirrors them there too.
type alerter struct {
	popup   widget.Alerter
	desktop *notify.Errors
	log     logrus.FieldLogger
}

func (a *alerter) ShowAlert(title, message string) {
	a.popup.ShowAlert(title, message)
	if a.desktop == nil {
		return
	}
	if err := a.desktop.Show(title, message); err != nil {
		a.log.WithError(err).Debug("desktop notification failed")
	}
}

// dismissed clears the desktop notification once the last alert is
// acknowledged.
func (a *alerter) dismissed(pending int) {
	if a.desktop == nil || pending > 0 {
		return
	}
	if err := a.desktop.Dismiss(); err != nil {
		a.log.WithError(err).Debug("closing desktop notification failed")
	}
}
