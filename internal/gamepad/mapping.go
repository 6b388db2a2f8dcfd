package gamepad

import "math"

// NormalizeAxis converts a raw stick value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// Layout families reported for connected devices.
const (
	LayoutXbox        = "xbox"
	LayoutPlayStation = "playstation"
	LayoutSwitchPro   = "switch_pro"
	LayoutGeneric     = "generic"
)

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]string{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: LayoutXbox, // Xbox 360
	{0x045E, 0x02FF}: LayoutXbox, // Xbox One
	{0x045E, 0x0B12}: LayoutXbox, // Xbox Series X|S
	{0x045E, 0x0B13}: LayoutXbox, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: LayoutPlayStation, // DualSense
	{0x054C, 0x09CC}: LayoutPlayStation, // DualShock 4 v2
	{0x054C, 0x05C4}: LayoutPlayStation, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: LayoutSwitchPro,
}

// LayoutFor returns the layout family of a device identified by
// vendor/product ID, falling back to LayoutGeneric.
func LayoutFor(vendorID, productID uint16) string {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if l, ok := knownDevices[key]; ok {
		return l
	}
	return LayoutGeneric
}
