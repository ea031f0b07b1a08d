package ssd1306

// Control bytes prefixing every bus transaction.
const (
	controlCommand = 0x80 // Co=1, D/C#=0: one command byte follows
	controlData    = 0x40 // Co=0, D/C#=1: data stream follows
)

// Command register map.
const (
	setLowColumn          = 0x00
	setHighColumn         = 0x10
	setMemoryMode         = 0x20
	setColumnAddr         = 0x21
	setPageAddr           = 0x22
	deactivateScroll      = 0x2E
	setStartLine          = 0x40
	setContrast           = 0x81
	setChargePump         = 0x8D
	setSegmentRemap       = 0xA1
	setDisplayAllOnResume = 0xA4
	setNormalDisplay      = 0xA6
	setInvertDisplay      = 0xA7
	setMultiplexRatio     = 0xA8
	setDisplayOff         = 0xAE
	setDisplayOn          = 0xAF
	setPageStart          = 0xB0
	setComScanDec         = 0xC8
	setDisplayOffset      = 0xD3
	setDisplayClockDiv    = 0xD5
	setPrecharge          = 0xD9
	setComPins            = 0xDA
	setVComDetect         = 0xDB
)

// Power supply dependent settings, indexed by external VCC.
var (
	chargePump = [2]byte{0x14, 0x10}
	contrast   = [2]byte{0xCF, 0x9F}
	precharge  = [2]byte{0xF1, 0x22}
)

// chunkSize is the number of data bytes in one bus transaction.
const chunkSize = 64
