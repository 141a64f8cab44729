package assembler

// Point is one raw boundary point from a catalog stream.
//
// Points arrive in storage order. Seq orders points within a group; Group
// partitions the stream into rings. Region and Subregion are carried onto
// the finished ring and must be uniform within a group.
type Point struct {
	Lon       float64 // Longitude in decimal degrees
	Lat       float64 // Latitude in decimal degrees
	Seq       int     // Draw order within the group
	Group     int     // Ring partition key
	Region    string  // Styling/grouping key
	Subregion string  // Join key granularity, may be empty
}

// Ring is an ordered run of points sharing one group.
//
// A ring is rendered as a closed loop; the edge from the last point back to
// the first is implicit. Points from different groups are never connected.
type Ring struct {
	Group     int
	Region    string
	Subregion string
	Points    []Point
}

// PolygonSet is a collection of rings in encounter order.
//
// Encounter order is the draw order: later rings sit atop earlier ones when
// fills overlap, so the order is part of the contract.
type PolygonSet struct {
	Rings []Ring
}
