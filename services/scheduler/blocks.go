package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"courseschedule_go/models"
	"courseschedule_go/utils"
)

// Reorder moves the block with movedID to newPosition (1-based, clamped
// to [1, len]) and returns a fresh block list with dense order numbers
// and reassigned week spans. Each block keeps its week COUNT, not its
// previous week values: weeks are dealt out sequentially from 1 in the
// new order, so the union of all spans always covers 1..totalWeekCount
// with no gaps or repeats.
//
// Insert-before/insert-after around the drop target is the caller's
// call: pass the target's order for "before", order+1 for "after".
// The input slice is left untouched.
func Reorder(blocks []models.Block, movedID string, newPosition int) ([]models.Block, error) {
	ordered := cloneBlocks(blocks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	idx := -1
	for i, b := range ordered {
		if b.ID == movedID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: block %s", ErrNotFound, movedID)
	}

	moved := ordered[idx]
	ordered = append(ordered[:idx], ordered[idx+1:]...)
	insertAt := clamp(newPosition-1, 0, len(ordered))
	ordered = append(ordered[:insertAt], append([]models.Block{moved}, ordered[insertAt:]...)...)

	renumber(ordered)
	return ordered, nil
}

// Insert appends a new block after the current last week. The id is a
// deterministic slug of the name, weeks default to the single week
// following the current maximum, order to maximum+1, and the color to a
// deterministic hash of the name when none is given. Empty and
// duplicate names are rejected.
func Insert(blocks []models.Block, name, color string) ([]models.Block, models.Block, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.Block{}, fmt.Errorf("%w: block name is required", ErrInvalidInput)
	}

	id := utils.Slugify(name)
	if id == "" {
		return nil, models.Block{}, fmt.Errorf("%w: block name %q has no usable characters", ErrInvalidInput, name)
	}
	for _, b := range blocks {
		if b.ID == id || strings.EqualFold(b.Name, name) {
			return nil, models.Block{}, fmt.Errorf("%w: block %q already exists", ErrInvalidInput, name)
		}
	}

	maxOrder, maxWeek := 0, 0
	for _, b := range blocks {
		if b.Order > maxOrder {
			maxOrder = b.Order
		}
		for _, w := range b.Weeks {
			if w > maxWeek {
				maxWeek = w
			}
		}
	}

	if color == "" {
		color = utils.ColorForName(name)
	}
	shortName := name
	if runes := []rune(name); len(runes) > 4 {
		shortName = string(runes[:4])
	}

	block := models.Block{
		EntityModel: models.EntityModel{ID: id},
		Name:        name,
		ShortName:   shortName,
		Order:       maxOrder + 1,
		Weeks:       models.IntList{maxWeek + 1},
		Color:       color,
	}

	out := cloneBlocks(blocks)
	out = append(out, block)
	return out, block, nil
}

// TotalWeekCount sums the week counts of all blocks
func TotalWeekCount(blocks []models.Block) int {
	total := 0
	for _, b := range blocks {
		total += len(b.Weeks)
	}
	return total
}

// renumber assigns dense order values and deals weeks out sequentially
// starting at week 1, preserving each block's week count. A block that
// never had weeks assigned is given a single week, matching what the
// drag-reorder flow has always done.
func renumber(blocks []models.Block) {
	currentWeek := 1
	for i := range blocks {
		blocks[i].Order = i + 1
		count := len(blocks[i].Weeks)
		if count == 0 {
			count = 1
		}
		weeks := make(models.IntList, count)
		for w := 0; w < count; w++ {
			weeks[w] = currentWeek + w
		}
		blocks[i].Weeks = weeks
		currentWeek += count
	}
}

func cloneBlocks(blocks []models.Block) []models.Block {
	out := make([]models.Block, len(blocks))
	copy(out, blocks)
	for i := range out {
		weeks := make(models.IntList, len(out[i].Weeks))
		copy(weeks, out[i].Weeks)
		out[i].Weeks = weeks
	}
	return out
}
