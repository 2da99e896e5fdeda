package player

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/fpcontroller/oerror"
	"github.com/sirupsen/logrus"
)

// DebugMode is a category of debug output of a controller.
type DebugMode uint8

const (
	DebugModeGround DebugMode = iota
	DebugModeAbilities
	DebugModeMovement
	DebugModeCollision
	debugModeCount
)

var debugModeNames = [debugModeCount]string{"ground", "abilities", "movement", "collision"}

// String ...
func (m DebugMode) String() string {
	if m >= debugModeCount {
		return fmt.Sprintf("DebugMode(%d)", uint8(m))
	}
	return debugModeNames[m]
}

// ParseDebugMode returns the debug mode with the name passed.
func ParseDebugMode(name string) (DebugMode, error) {
	for i, n := range debugModeNames {
		if strings.EqualFold(n, name) {
			return DebugMode(i), nil
		}
	}
	return 0, oerror.New("unknown debug mode %q", name)
}

// Debugger logs debug output of a controller for the modes that are enabled.
type Debugger struct {
	log     *logrus.Logger
	enabled [debugModeCount]bool
}

// NewDebugger creates a debugger logging to log with every mode disabled.
func NewDebugger(log *logrus.Logger) *Debugger {
	return &Debugger{log: log}
}

// Toggle flips the debug mode passed and returns whether it is now enabled.
func (d *Debugger) Toggle(mode DebugMode) bool {
	if mode >= debugModeCount {
		return false
	}
	d.enabled[mode] = !d.enabled[mode]
	return d.enabled[mode]
}

// Enabled returns true if the debug mode passed is enabled.
func (d *Debugger) Enabled(mode DebugMode) bool {
	return mode < debugModeCount && d.enabled[mode]
}

// Notify logs the message passed at debug level if the mode is enabled and cond is true.
func (d *Debugger) Notify(mode DebugMode, cond bool, format string, args ...any) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.Debugf("[%s] %s", mode, fmt.Sprintf(format, args...))
}

// NotifyFields logs msg at debug level with the fields passed, in the order they were set.
func (d *Debugger) NotifyFields(mode DebugMode, msg string, fields *orderedmap.OrderedMap[string, any]) {
	if !d.Enabled(mode) {
		return
	}
	var sb strings.Builder
	for el := fields.Front(); el != nil; el = el.Next() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", el.Key, el.Value)
	}
	d.log.Debugf("[%s] %s %s", mode, msg, sb.String())
}
