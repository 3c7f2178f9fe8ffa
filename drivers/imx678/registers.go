// Package imx678 provides constants for register addresses, limits and link
// tables used in the operation of the IMX678 image sensor.
package imx678

import "time"

const (
	// 7-bit bus address.
	AddressDefault = 0x1A

	// Standby or streaming mode.
	regModeSelect = 0x3000
	modeStreaming = 0x00
	modeStandby   = 0x01

	// Latch register updates until released.
	regHold = 0x3001

	// Leader-mode start strobe and XVS/XHS direction.
	regXMSTA     = 0x3002
	regXXSOutsel = 0x30A4
	regXXSDrv    = 0x30A6
	regExtmode   = 0x30CE

	// XVS pulse length, 2^n H with n=0~3.
	regXVSLng = 0x30CC
	// XHS pulse length, 16*(2^n) clock with n=0~3.
	regXHSLng = 0x30CD

	// Clock selection and link speed.
	regInckSel     = 0x3014
	regDatarateSel = 0x3015

	// Lane count.
	regLanemode = 0x3040
	laneMode2   = 0x01
	laneMode4   = 0x03

	// Vertical/horizontal timing totals.
	regVMAX = 0x3028 // 3 bytes
	regHMAX = 0x302C // 2 bytes

	// Shutter; exposure is the complement of SHR within VMAX.
	regSHR = 0x3050 // 3 bytes

	// Analog gain and HGC/LGC channel select.
	regAnalogGain = 0x3070 // 2 bytes
	regFDGSel0    = 0x3030

	// Flip.
	regFlipWinmodeH = 0x3020
	regFlipWinmodeV = 0x3021

	// Black level and digital clamp.
	regBlkLevel     = 0x30DC // 2 bytes
	regDigitalClamp = 0x3458
)

// Timing limits and control ranges.
const (
	vmaxMax     = 0xFFFFF
	vmaxDefault = 2250
	hmaxMax     = 0xFFFF

	// SHR floor with the clear-HDR reserve; every exposure ceiling uses
	// this single constant so the limit cannot drift between code paths.
	shrMinHDRReserve = 10

	exposureMin     = 2
	exposureStep    = 1
	exposureDefault = 1000

	gainMinNormal = 0
	gainMinHGC    = 34
	gainMaxNormal = 240
	gainStep      = 1
	gainDefault   = 0

	blkLevelDefault = 50
	blkLevelMax     = 4095

	// Fixed pixel-rate constant all HMAX/blanking maths is scaled by.
	pixelRateConst = 74250000
)

// Native and active pixel array geometry.
const (
	nativeWidth      = 3856
	nativeHeight     = 2180
	pixelArrayLeft   = 8
	pixelArrayTop    = 8
	pixelArrayWidth  = 3840
	pixelArrayHeight = 2160

	// Embedded metadata stream geometry.
	embeddedLineWidth = 16384
	numEmbeddedLines  = 1
)

// Settle delays. XCLR is the reset-release to first-access delay; the
// stream delay covers the standby to streaming transition.
const (
	xclrSettle       = 500 * time.Millisecond
	xclrSettleJitter = time.Millisecond

	streamSettle       = 25 * time.Millisecond
	streamSettleJitter = time.Millisecond
)

// LinkFreq indexes the supported link frequencies.
type LinkFreq int

const (
	LinkFreq297MHz  LinkFreq = iota // 594Mbps/lane
	LinkFreq360MHz                  // 720Mbps/lane
	LinkFreq445MHz                  // 891Mbps/lane
	LinkFreq594MHz                  // 1188Mbps/lane
	LinkFreq720MHz                  // 1440Mbps/lane
	LinkFreq891MHz                  // 1782Mbps/lane
	LinkFreq1039MHz                 // 2079Mbps/lane
	LinkFreq1188MHz                 // 2376Mbps/lane
	numLinkFreqs
)

var linkFreqHz = [numLinkFreqs]uint64{
	LinkFreq297MHz:  297000000,
	LinkFreq360MHz:  360000000,
	LinkFreq445MHz:  445500000,
	LinkFreq594MHz:  594000000,
	LinkFreq720MHz:  720000000,
	LinkFreq891MHz:  891000000,
	LinkFreq1039MHz: 1039500000,
	LinkFreq1188MHz: 1188000000,
}

var linkFreqRegValue = [numLinkFreqs]uint8{
	LinkFreq297MHz:  0x07,
	LinkFreq360MHz:  0x06,
	LinkFreq445MHz:  0x05,
	LinkFreq594MHz:  0x04,
	LinkFreq720MHz:  0x03,
	LinkFreq891MHz:  0x02,
	LinkFreq1039MHz: 0x01,
	LinkFreq1188MHz: 0x00,
}

// Minimum HMAX for the 4-lane full-resolution mode; x2 for 2-lane, divided
// by the per-mode hmax_div.
var hmaxBase4Lane = [numLinkFreqs]uint16{
	LinkFreq297MHz:  1584,
	LinkFreq360MHz:  1320,
	LinkFreq445MHz:  1100,
	LinkFreq594MHz:  792,
	LinkFreq720MHz:  660,
	LinkFreq891MHz:  550,
	LinkFreq1039MHz: 440,
	LinkFreq1188MHz: 396,
}

// inckCfg maps a platform clock rate to the INCK_SEL register code.
type inckCfg struct {
	xclkHz  uint32
	inckSel uint8
}

var inckTable = []inckCfg{
	{74250000, 0x00},
	{37125000, 0x01},
	{72000000, 0x02},
	{27000000, 0x03},
	{24000000, 0x04},
	{36000000, 0x05},
	{18000000, 0x06},
	{13500000, 0x07},
}

// SyncMode selects who drives the XVS/XHS frame-sync lines.
type SyncMode uint8

const (
	SyncInternalLeader SyncMode = iota
	SyncExternalLeader
	SyncFollower
)

func (m SyncMode) String() string {
	switch m {
	case SyncInternalLeader:
		return "internal-leader"
	case SyncExternalLeader:
		return "external-leader"
	case SyncFollower:
		return "follower"
	default:
		return "unknown"
	}
}

// Pin-direction register triple applied at first stream start.
type syncRegs struct {
	writeExtmode bool
	extmode      uint8
	xxsDrv       uint8
	xxsOutsel    uint8
}

var syncModeRegs = [3]syncRegs{
	SyncInternalLeader: {writeExtmode: true, extmode: 0x00, xxsDrv: 0x00, xxsOutsel: 0x0A},
	SyncExternalLeader: {writeExtmode: true, extmode: 0x01, xxsDrv: 0x03, xxsOutsel: 0x08},
	SyncFollower:       {writeExtmode: false, xxsDrv: 0x0F, xxsOutsel: 0x00},
}
