//go:build !linux

package mpris

import "github.com/sirupsen/logrus"

// Adapter is a no-op outside Linux, where there is no session bus.
type Adapter struct{}

func New(_ *Control, _ logrus.FieldLogger) (*Adapter, error) {
	return &Adapter{}, nil
}

func (a *Adapter) Close() error {
	return nil
}
