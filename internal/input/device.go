package input

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Ports matching any of these are never offered or auto-connected.
var ExcludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// Ports matching these are picked first when auto-connecting.
var PreferredPatterns = []string{"Piano", "Keyboard", "Launchkey", "Novation"}

type DeviceError struct {
	Device string
	Op     string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("midi device %q: %s: %v", e.Device, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// Port is one MIDI input. Listen delivers raw messages on the driver's own
// goroutine until stop is called.
type Port interface {
	Name() string
	Listen(onMsg func(msg []byte), onErr func(err error)) (stop func(), err error)
	Close() error
}

type Driver interface {
	Ports() ([]Port, error)
	Close() error
}

// Device keeps at most one live producer connected to a port. The producer
// only decodes and pushes into the sink.
type Device struct {
	mu      sync.Mutex
	drv     Driver
	sink    Sink
	decoder Decoder

	port Port
	stop func()
	name string
}

// NewDevice opens the rtmidi driver. Call Close when done.
func NewDevice(sink Sink) (*Device, error) {
	drv, err := rtmididrv.New()
	if nil != err {
		return nil, &DeviceError{Op: "driver", Err: err}
	}
	return NewDeviceWithDriver(&rtmidiDriver{drv: drv}, sink), nil
}

func NewDeviceWithDriver(drv Driver, sink Sink) *Device {
	return &Device{drv: drv, sink: sink}
}

// Ins lists the usable input names.
func (d *Device) Ins() ([]string, error) {
	ports, err := d.drv.Ports()
	if nil != err {
		return nil, &DeviceError{Op: "list", Err: err}
	}
	names := []string{}
	for _, p := range ports {
		name := p.Name()
		if excluded(name) {
			log.Debug("midi: input excluded", "device", name)
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Connected returns the current device name, empty when disconnected.
func (d *Device) Connected() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// Connect drops the current producer and listens on the named input. On
// failure the device is left disconnected.
func (d *Device) Connect(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.disconnect()

	ports, err := d.drv.Ports()
	if nil != err {
		return &DeviceError{Device: name, Op: "list", Err: err}
	}
	var found Port
	for _, p := range ports {
		if p.Name() == name {
			found = p
			break
		}
	}
	if nil == found {
		return &DeviceError{Device: name, Op: "find", Err: errors.New("no such input")}
	}

	stop, err := found.Listen(func(msg []byte) {
		e, ok := d.decoder.Decode(msg)
		if !ok {
			return
		}
		d.sink.Push(e)
	}, func(err error) {
		log.Warn("midi: listener error", "device", name, "err", err)
		// The listener goroutine must not tear itself down
		go d.dropIfCurrent(name)
	})
	if nil != err {
		_ = found.Close()
		return &DeviceError{Device: name, Op: "listen", Err: err}
	}

	d.port = found
	d.stop = stop
	d.name = name
	log.Info("midi: connected", "device", name)
	return nil
}

// AutoConnect picks a preferred input, or the only one, and connects to it.
func (d *Device) AutoConnect() error {
	names, err := d.Ins()
	if nil != err {
		return err
	}
	name, ok := pickPreferred(names)
	if !ok {
		return &DeviceError{Op: "auto-connect", Err: errors.Errorf("no suitable input among %d", len(names))}
	}
	return d.Connect(name)
}

func (d *Device) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disconnect()
}

func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disconnect()
	if err := d.drv.Close(); nil != err {
		log.Error("midi: driver close failed", "err", err)
	}
}

func (d *Device) dropIfCurrent(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.name == name {
		d.disconnect()
	}
}

func (d *Device) disconnect() {
	if nil == d.port {
		return
	}
	if nil != d.stop {
		d.stop()
		d.stop = nil
	}
	if err := d.port.Close(); nil != err {
		log.Warn("midi: close failed", "device", d.name, "err", err)
	}
	log.Info("midi: disconnected", "device", d.name)
	d.port = nil
	d.name = ""
}

func excluded(name string) bool {
	for _, pat := range ExcludedPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func pickPreferred(inputs []string) (string, bool) {
	for _, pat := range PreferredPatterns {
		for _, name := range inputs {
			if containsCI(name, pat) {
				return name, true
			}
		}
	}
	if len(inputs) == 1 {
		return inputs[0], true
	}
	return "", false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type rtmidiDriver struct {
	drv *rtmididrv.Driver
}

func (r *rtmidiDriver) Ports() ([]Port, error) {
	ins, err := r.drv.Ins()
	if nil != err {
		return nil, err
	}
	ports := make([]Port, len(ins))
	for i, in := range ins {
		ports[i] = &rtmidiPort{in: in}
	}
	return ports, nil
}

func (r *rtmidiDriver) Close() error {
	return r.drv.Close()
}

type rtmidiPort struct {
	in drivers.In
}

func (p *rtmidiPort) Name() string {
	return p.in.String()
}

func (p *rtmidiPort) Listen(onMsg func(msg []byte), onErr func(err error)) (func(), error) {
	if err := p.in.Open(); nil != err {
		return nil, err
	}
	// The device timestamp is ignored, events are stamped on decode
	return midi.ListenTo(p.in, func(msg midi.Message, _ int32) {
		onMsg(msg)
	}, midi.HandleError(onErr))
}

func (p *rtmidiPort) Close() error {
	return p.in.Close()
}
