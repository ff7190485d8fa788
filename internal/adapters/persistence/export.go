package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// ExportFormatVersion is written into every export header.
const ExportFormatVersion = 1

// ExportHeader is the first line of an export, readable without decoding
// the slots.
type ExportHeader struct {
	Version int       `json:"version"`
	CycleID string    `json:"cycle_id"`
	Tick    int64     `json:"tick"`
	TakenAt time.Time `json:"taken_at"`
	Slots   int       `json:"slots"`
}

type exportSlot struct {
	Category string `json:"category"`
	Subtype  string `json:"subtype"`
	Total    string `json:"total"`
	Cargo    string `json:"cargo"`
	Target   string `json:"target"`
	TotalRaw int64  `json:"total_raw"`
	CargoRaw int64  `json:"cargo_raw"`
	TargRaw  int64  `json:"target_raw"`
}

type exportBody struct {
	Placements int          `json:"placements"`
	FedRaw     int64        `json:"fed_raw"`
	FedOre     string       `json:"fed_ore,omitempty"`
	Enqueued   int          `json:"enqueued"`
	Slots      []exportSlot `json:"slots"`
}

// ExportSnapshot writes snap to w as zstd-compressed JSON: a header line
// followed by the body.
func ExportSnapshot(w io.Writer, snap *common.CycleSnapshot) error {
	if snap == nil {
		return fmt.Errorf("no snapshot to export")
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	bw := bufio.NewWriter(enc)
	header := ExportHeader{
		Version: ExportFormatVersion,
		CycleID: snap.CycleID,
		Tick:    snap.Tick,
		TakenAt: snap.TakenAt.UTC(),
		Slots:   len(snap.Slots),
	}
	body := exportBody{
		Placements: snap.Placements,
		FedRaw:     snap.Fed.Raw(),
		FedOre:     snap.FedOre,
		Enqueued:   snap.Enqueued,
		Slots:      make([]exportSlot, 0, len(snap.Slots)),
	}
	for _, s := range snap.Slots {
		body.Slots = append(body.Slots, exportSlot{
			Category: s.Key.Category,
			Subtype:  s.Key.Subtype,
			Total:    s.Total.String(),
			Cargo:    s.Cargo.String(),
			Target:   s.Target.String(),
			TotalRaw: s.Total.Raw(),
			CargoRaw: s.Cargo.Raw(),
			TargRaw:  s.Target.Raw(),
		})
	}

	je := json.NewEncoder(bw)
	if err := je.Encode(header); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode export header: %w", err)
	}
	if err := je.Encode(body); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode export body: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return enc.Close()
}

// ImportSnapshot reads an export written by ExportSnapshot.
func ImportSnapshot(r io.Reader) (*ExportHeader, *common.CycleSnapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	jd := json.NewDecoder(bufio.NewReader(dec))
	var header ExportHeader
	if err := jd.Decode(&header); err != nil {
		return nil, nil, fmt.Errorf("failed to decode export header: %w", err)
	}
	if header.Version != ExportFormatVersion {
		return nil, nil, fmt.Errorf("unsupported export version %d", header.Version)
	}
	var body exportBody
	if err := jd.Decode(&body); err != nil {
		return nil, nil, fmt.Errorf("failed to decode export body: %w", err)
	}

	snap := &common.CycleSnapshot{
		CycleID:    header.CycleID,
		Tick:       header.Tick,
		TakenAt:    header.TakenAt,
		Placements: body.Placements,
		Fed:        inventory.Amount(body.FedRaw),
		FedOre:     body.FedOre,
		Enqueued:   body.Enqueued,
		Slots:      make([]common.SlotSnapshot, 0, len(body.Slots)),
	}
	for _, s := range body.Slots {
		snap.Slots = append(snap.Slots, common.SlotSnapshot{
			Key:    inventory.MaterialKey{Category: s.Category, Subtype: s.Subtype},
			Total:  inventory.Amount(s.TotalRaw),
			Cargo:  inventory.Amount(s.CargoRaw),
			Target: inventory.Amount(s.TargRaw),
		})
	}
	return &header, snap, nil
}
