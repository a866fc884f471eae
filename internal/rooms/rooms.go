package rooms

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultList = "zoom:Zoom Room,room1:Meeting Room 1,room2:Meeting Room 2"

	firstSlotHour = 8
	lastSlotHour  = 20
)

var (
	ErrEmptyCatalog = errors.New("room catalog is empty")
	ErrInvalidRoom  = errors.New("invalid room definition")
	ErrDuplicate    = errors.New("duplicate room id")
)

type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Catalog struct {
	rooms []Room
	index map[string]int
}

func New(rooms []Room) (*Catalog, error) {
	if len(rooms) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		rooms: make([]Room, 0, len(rooms)),
		index: make(map[string]int, len(rooms)),
	}

	for _, r := range rooms {
		if r.ID == "" {
			return nil, fmt.Errorf("room %q has no id: %w", r.Name, ErrInvalidRoom)
		}

		if _, ok := c.index[r.ID]; ok {
			return nil, fmt.Errorf("room %q: %w", r.ID, ErrDuplicate)
		}

		if r.Name == "" {
			r.Name = r.ID
		}

		c.index[r.ID] = len(c.rooms)
		c.rooms = append(c.rooms, r)
	}

	return c, nil
}

// Parse reads a comma separated list of "id:name" pairs. The name part is
// optional and defaults to the id.
func Parse(list string) (*Catalog, error) {
	var rooms []Room

	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		id, name, _ := strings.Cut(item, ":")

		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%q: %w", item, ErrInvalidRoom)
		}

		rooms = append(rooms, Room{ID: id, Name: strings.TrimSpace(name)})
	}

	return New(rooms)
}

func (c *Catalog) Rooms() []Room {
	res := make([]Room, len(c.rooms))
	copy(res, c.rooms)

	return res
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]

	return ok
}

// Slots lists the bookable hour boundaries offered to users, 08:00 to 20:00.
func Slots() []string {
	slots := make([]string, 0, lastSlotHour-firstSlotHour+1)

	for h := firstSlotHour; h <= lastSlotHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}

	return slots
}
