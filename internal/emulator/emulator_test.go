package emulator

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestBusCommands(t *testing.T) {
	b := New(0x3c)
	for _, w := range [][]byte{
		{0x80, 0xAF},
		{0x80, 0x81}, {0x80, 0x42},
		{0x80, 0xA7},
		{0x80, 0x20}, {0x80, 0x00},
		{0x80, 0x8D}, {0x80, 0x14},
		{0x80, 0x45},
	} {
		if err := b.Tx(0x3c, w, nil); err != nil {
			t.Fatal(err)
		}
	}

	s := b.State()
	if !s.On || !s.Inverted {
		t.Errorf("expected display on and inverted, got %+v", s)
	}
	if s.Contrast != 0x42 {
		t.Errorf("expected contrast 0x42, got %#02x", s.Contrast)
	}
	if s.Mode != HorizontalMode {
		t.Errorf("expected horizontal addressing, got %d", s.Mode)
	}
	if s.ChargePump != 0x14 {
		t.Errorf("expected charge pump 0x14, got %#02x", s.ChargePump)
	}
	if s.StartLine != 5 {
		t.Errorf("expected start line 5, got %d", s.StartLine)
	}
	if txs, commands, data := b.Stats(); txs != 9 || commands != 6 || data != 0 {
		t.Errorf("expected 9 transactions, 6 commands and no data, got %d, %d and %d", txs, commands, data)
	}
}

func TestBusCommandStream(t *testing.T) {
	b := New(0x3c)
	// Co=0 command stream with arguments.
	if err := b.Tx(0x3c, []byte{0x00, 0x81, 0x10, 0xAF, 0xB3, 0x12, 0x05}, nil); err != nil {
		t.Fatal(err)
	}
	s := b.State()
	if s.Contrast != 0x10 || !s.On || s.Page != 3 || s.Column != 0x25 {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestBusData(t *testing.T) {
	t.Run("page mode", func(it *testing.T) {
		b := New(0x3c)
		if err := b.Tx(0x3c, []byte{0x00, 0xB2, 0x17, 0x0E}, nil); err != nil {
			it.Fatal(err)
		}
		if err := b.Tx(0x3c, []byte{0x40, 0x01, 0x80}, nil); err != nil {
			it.Fatal(err)
		}
		f := b.Frame()
		if !f.Pixel(126, 16) || !f.Pixel(127, 23) {
			it.Error("expected pixels (126,16) and (127,23) lit")
		}
		if s := b.State(); s.Column != 0 || s.Page != 2 {
			it.Errorf("expected column to wrap within page 2, got column %d page %d", s.Column, s.Page)
		}
	})

	t.Run("horizontal mode", func(it *testing.T) {
		b := New(0x3c)
		if err := b.Tx(0x3c, []byte{0x00, 0x20, 0x00, 0xB7, 0x17, 0x0F}, nil); err != nil {
			it.Fatal(err)
		}
		if err := b.Tx(0x3c, []byte{0x40, 0xff, 0xff}, nil); err != nil {
			it.Fatal(err)
		}
		f := b.Frame()
		if !f.Pixel(127, 63) || !f.Pixel(0, 0) {
			it.Error("expected write to wrap from the last page to the first")
		}
	})

	t.Run("single data byte", func(it *testing.T) {
		b := New(0x3c)
		if err := b.Tx(0x3c, []byte{0xC0, 0x01, 0xC0, 0x01}, nil); err != nil {
			it.Fatal(err)
		}
		f := b.Frame()
		if !f.Pixel(0, 0) || !f.Pixel(1, 0) {
			it.Error("expected two single byte writes")
		}
	})
}

func TestBusPixel(t *testing.T) {
	b := New(0x3c)
	if err := b.Tx(0x3c, []byte{0x40, 0x01}, nil); err != nil {
		t.Fatal(err)
	}
	if b.Pixel(0, 0) {
		t.Error("expected no pixels while the display is off")
	}

	b.Tx(0x3c, []byte{0x80, 0xAF}, nil)
	if !b.Pixel(0, 0) || b.Pixel(1, 0) {
		t.Error("expected only (0,0) lit")
	}

	b.Tx(0x3c, []byte{0x80, 0xA7}, nil)
	if b.Pixel(0, 0) || !b.Pixel(1, 0) {
		t.Error("expected inverted pixels")
	}

	b.Tx(0x3c, []byte{0x80, 0xA5}, nil)
	if !b.Pixel(0, 0) || !b.Pixel(1, 0) {
		t.Error("expected entire display on")
	}
}

func TestBusErrors(t *testing.T) {
	b := New(0x3c)
	if err := b.Tx(0x3d, []byte{0x80, 0xAF}, nil); !errors.Is(err, ErrNoDevice) {
		t.Errorf("expected %v, got %v", ErrNoDevice, err)
	}
	if err := b.Tx(0x3c, nil, make([]byte, 1)); !errors.Is(err, ErrRead) {
		t.Errorf("expected %v, got %v", ErrRead, err)
	}
	if err := b.Tx(0x3c, []byte{0x01, 0xAF}, nil); !errors.Is(err, ErrProtocol) {
		t.Errorf("expected %v, got %v", ErrProtocol, err)
	}

	nack := errors.New("nack")
	b.FailWith(nack)
	if err := b.Tx(0x3c, []byte{0x80, 0xAF}, nil); !errors.Is(err, nack) {
		t.Errorf("expected %v, got %v", nack, err)
	}
	b.FailWith(nil)
	if err := b.Tx(0x3c, []byte{0x80, 0xAF}, nil); err != nil {
		t.Error(err)
	}
}

func TestBusSpeed(t *testing.T) {
	b := New(0x3c)
	if err := b.SetSpeed(400 * physic.KiloHertz); err != nil {
		t.Fatal(err)
	}
	if s := b.State(); s.Speed != 400*physic.KiloHertz {
		t.Errorf("expected 400kHz, got %s", s.Speed)
	}
}
