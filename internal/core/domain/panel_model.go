package domain

import (
	"fmt"
	"strings"
)

// Panel is one of the mutually exclusive views of the settings flow.
type Panel int

const (
	PanelSettings Panel = iota
	PanelPinSetup
	PanelBackupPhraseDisplay
	PanelImportPhrase
	PanelElectrumOptions
)

// Panels lists every panel, root first.
var Panels = []Panel{
	PanelSettings,
	PanelPinSetup,
	PanelBackupPhraseDisplay,
	PanelImportPhrase,
	PanelElectrumOptions,
}

var panelNames = map[Panel]string{
	PanelSettings:            "settings",
	PanelPinSetup:            "pinSetup",
	PanelBackupPhraseDisplay: "backupPhraseDisplay",
	PanelImportPhrase:        "importPhrase",
	PanelElectrumOptions:     "electrumOptions",
}

func (p Panel) String() string {
	if name, ok := panelNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Panel(%d)", int(p))
}

// IsValid ...
func (p Panel) IsValid() bool {
	_, ok := panelNames[p]
	return ok
}

// IsOverlay returns whether the panel is one reachable only from Settings.
func (p Panel) IsOverlay() bool {
	return p.IsValid() && p != PanelSettings
}

// ParsePanel ...
func ParsePanel(s string) (Panel, error) {
	for p, name := range panelNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidPanel, s)
}
