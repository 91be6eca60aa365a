package engine

import (
	"schoolbuild/pkg/schema"
)

// BuildRooms normalizes a rooms export. Capacity is parsed as an integer and
// defaults to 0.
func BuildRooms(t *schema.Table) *schema.Dataset {
	ds := schema.NewDataset(schema.Rooms)
	b := bind(t, ds)

	codes := b.column("RoomCode", schema.RoomCodeCandidates)
	names := b.column("RoomName", schema.RoomNameCandidates)
	sizes := b.column("Capacity", schema.CapacityCandidates)

	for i := range codes {
		ds.Append(schema.Record{
			"RoomCode": codes[i],
			"RoomName": names[i],
			"Capacity": schema.ParseInteger(sizes[i]),
		})
	}
	return ds
}
