package game

// BoardConfig describes a plinko board. Immutable once constructed; identical
// configs always yield identical peg and slot sets.
type BoardConfig struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	PegRows   int     `json:"peg_rows"`
	SlotCount int     `json:"slot_count"`
}

// Validate reports the first malformed field, if any.
func (c BoardConfig) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Reason: "must be positive"}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Reason: "must be positive"}
	}
	if c.Width <= 2*(BorderWidth+BallRadius) {
		return &ConfigError{Field: "width", Reason: "too narrow for borders and ball"}
	}
	if c.PegRows <= 0 {
		return &ConfigError{Field: "peg_rows", Reason: "must be positive"}
	}
	if c.SlotCount < MinSlotCount || c.SlotCount > MaxSlotCount {
		return &ConfigError{Field: "slot_count", Reason: "supported range is 3-8"}
	}
	return nil
}

// Peg is a fixed circular obstacle in the triangular lattice.
type Peg struct {
	ID  int  `json:"id"`
	Row int  `json:"row"`
	Col int  `json:"col"`
	Pos Vec2 `json:"pos"`
}

// Slot is one of the bottom-edge partitions representing a prize outcome.
type Slot struct {
	Index   int     `json:"index"`
	XStart  float64 `json:"x_start"`
	XEnd    float64 `json:"x_end"`
	CenterX float64 `json:"center_x"`
}

// Board holds the complete static geometry for one BoardConfig. Built once
// and read-only afterward; trajectory generations share it freely.
type Board struct {
	Config      BoardConfig
	Pegs        []Peg
	Slots       []Slot
	BucketZoneY float64
}

// NewBoard lays out the triangular peg grid and the slot partition.
// Row r carries MinPegCols+r pegs, horizontally centered, with vertical
// spacing playableHeight/(pegRows+1) and horizontal spacing scaled to the
// board width.
func NewBoard(cfg BoardConfig) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bucketY := fix(cfg.Height * BucketZoneRatio)
	vSpacing := fix(bucketY / float64(cfg.PegRows+1))
	innerWidth := cfg.Width - 2*BorderWidth

	pegs := make([]Peg, 0, cfg.PegRows*(MinPegCols+cfg.PegRows))
	id := 0
	for row := 0; row < cfg.PegRows; row++ {
		cols := MinPegCols + row
		hSpacing := innerWidth / float64(cols+1)
		y := fix(vSpacing * float64(row+1))
		for col := 0; col < cols; col++ {
			pegs = append(pegs, Peg{
				ID:  id,
				Row: row,
				Col: col,
				Pos: NewVec2(BorderWidth+hSpacing*float64(col+1), y),
			})
			id++
		}
	}

	slotWidth := innerWidth / float64(cfg.SlotCount)
	slots := make([]Slot, cfg.SlotCount)
	for i := 0; i < cfg.SlotCount; i++ {
		start := fix(BorderWidth + slotWidth*float64(i))
		end := fix(BorderWidth + slotWidth*float64(i+1))
		slots[i] = Slot{
			Index:   i,
			XStart:  start,
			XEnd:    end,
			CenterX: fix((start + end) / 2),
		}
	}

	return &Board{
		Config:      cfg,
		Pegs:        pegs,
		Slots:       slots,
		BucketZoneY: bucketY,
	}, nil
}

// SlotAt maps a horizontal position to the slot it falls in, clamping to the
// outermost slots for positions inside the borders.
func (b *Board) SlotAt(x float64) int {
	for i := range b.Slots {
		if x < b.Slots[i].XEnd {
			return i
		}
	}
	return len(b.Slots) - 1
}

// nearestPegWithin returns the closest peg whose center is within radius of
// pos, excluding skipID (the peg hit on the previous frame). Returns nil when
// no peg is in range.
func (b *Board) nearestPegWithin(pos Vec2, radius float64, skipID int) *Peg {
	var best *Peg
	bestDist := radius
	for i := range b.Pegs {
		peg := &b.Pegs[i]
		if peg.ID == skipID {
			continue
		}
		d := pos.DistanceTo(peg.Pos)
		if d <= bestDist {
			bestDist = d
			best = peg
		}
	}
	return best
}
