package services

import (
	"sort"

	"moments/internal/models/response_models"
	"moments/internal/models/room_models"
)

// SelectActivities picks the catalog items everyone can agree on. An item
// qualifies when every participant rated it at least MinEach, the ratings
// sum to at least MinSum, and the highest and lowest ratings differ by at
// most MaxGap. Qualifying items are ranked by sum (desc), then gap (asc),
// then catalog order, and the first topCount are returned.
func SelectActivities(room room_models.Room) []response_models.RoomPick {
	if len(room.Participants) == 0 {
		return []response_models.RoomPick{}
	}

	type candidate struct {
		pick  response_models.RoomPick
		order int
	}
	var candidates []candidate

	for order, item := range room.Activities {
		pick, ok := evaluateItem(room, item)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{pick: pick, order: order})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.pick.Sum != b.pick.Sum {
			return a.pick.Sum > b.pick.Sum
		}
		if a.pick.Gap != b.pick.Gap {
			return a.pick.Gap < b.pick.Gap
		}
		return a.order < b.order
	})

	limit := room.TopCount
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}
	picks := make([]response_models.RoomPick, 0, limit)
	for _, c := range candidates[:limit] {
		picks = append(picks, c.pick)
	}
	return picks
}

func evaluateItem(room room_models.Room, item room_models.CatalogItem) (response_models.RoomPick, bool) {
	th := room.Thresholds
	pick := response_models.RoomPick{
		ActivityID: item.ID,
		Label:      item.Label,
		Ratings:    make(map[string]int, len(room.Participants)),
	}

	lowest, highest := 0, 0
	for i, p := range room.Participants {
		rating, ok := room.Ratings[p.ID][item.ID]
		if !ok || rating.Value < th.MinEach {
			return response_models.RoomPick{}, false
		}
		v := rating.Value
		if i == 0 || v < lowest {
			lowest = v
		}
		if i == 0 || v > highest {
			highest = v
		}
		pick.Sum += v
		pick.Ratings[p.ID] = v
	}

	pick.Gap = highest - lowest
	if pick.Sum < th.MinSum || pick.Gap > th.MaxGap {
		return response_models.RoomPick{}, false
	}
	return pick, true
}
