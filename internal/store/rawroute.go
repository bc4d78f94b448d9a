package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sfmta/transitreport/internal/model"
	"github.com/sfmta/transitreport/internal/shape"
)

// rawRouteStop mirrors one entry of the upstream route payload's
// "stop" array (routes.content JSON column, §6).
type rawRouteStop struct {
	Tag   string `json:"tag"`
	Title string `json:"title"`
	Lat   string `json:"lat"`
	Lon   string `json:"lon"`
}

// rawRouteDirection mirrors one entry of the "direction" array: a
// named direction (e.g. "Inbound") with its ordered member stops.
type rawRouteDirection struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
	Stop []struct {
		Tag string `json:"tag"`
	} `json:"stop"`
}

// rawRoutePayload is the shape of the routes.content JSON column.
// Path is an optional Google-encoded polyline of the route's physical
// shape; most upstream route records don't carry one.
type rawRoutePayload struct {
	Stop      []rawRouteStop      `json:"stop"`
	Direction []rawRouteDirection `json:"direction"`
	Path      string              `json:"path"`
}

// parseRoutePayload converts the raw upstream JSON payload plus the
// collector-supplied name/type into a model.RouteDefinition. Grounded
// on report_classes.py's Route.__init__ / extract_stops: stop
// directions are derived from direction-list membership, never stored
// directly on the stop record itself.
func parseRoutePayload(routeID, routeName, routeType string, payload []byte) (*model.RouteDefinition, error) {
	var outer struct {
		Route rawRoutePayload `json:"route"`
	}
	if err := json.Unmarshal(payload, &outer); err != nil {
		return nil, fmt.Errorf("parse route payload: %w", err)
	}
	raw := outer.Route
	if len(raw.Stop) == 0 {
		return nil, fmt.Errorf("route %s: empty stops list", routeID)
	}

	var inbound, outbound []string
	for _, dir := range raw.Direction {
		var tags []string
		for _, s := range dir.Stop {
			tags = append(tags, s.Tag)
		}
		switch dir.Name {
		case "Inbound":
			for _, tag := range tags {
				if indexOf(inbound, tag) < 0 {
					inbound = append(inbound, tag)
				}
			}
		case "Outbound":
			for _, tag := range tags {
				if indexOf(outbound, tag) < 0 {
					outbound = append(outbound, tag)
				}
			}
		}
	}

	stops := make(map[string]model.Stop, len(raw.Stop))
	for _, rs := range raw.Stop {
		lat, err := strconv.ParseFloat(rs.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("route %s: stop %s: bad lat %q: %w", routeID, rs.Tag, rs.Lat, err)
		}
		lon, err := strconv.ParseFloat(rs.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("route %s: stop %s: bad lon %q: %w", routeID, rs.Tag, rs.Lon, err)
		}
		stops[rs.Tag] = model.Stop{
			Tag:   rs.Tag,
			Title: rs.Title,
			Lat:   lat,
			Lon:   lon,
		}
	}

	// When the upstream payload carries a shape, use it to break ties
	// among any tag-adjacent stops that share the exact same
	// coordinates — the raw direction list gives no usable order for
	// those, so their relative position is resolved by projection
	// along the route's physical path instead.
	if raw.Path != "" {
		if coords, err := shape.DecodePolyline(raw.Path); err == nil {
			inbound = resolveAmbiguousOrder(inbound, stops, coords)
			outbound = resolveAmbiguousOrder(outbound, stops, coords)
		}
	}

	def := &model.RouteDefinition{
		RouteID:       routeID,
		Name:          routeName,
		Type:          model.RouteType(routeType),
		InboundStops:  inbound,
		OutboundStops: outbound,
		Stops:         stops,
	}
	def.AssignStopDirections()
	return def, nil
}

// resolveAmbiguousOrder scans a direction's stop sequence for maximal
// runs of two or more consecutive tags that share identical
// coordinates (the raw direction list cannot order these relative to
// each other) and replaces each such run with the order
// shape.OrderStopsAlongShape derives from the route's decoded path.
// Tags whose coordinates don't collide with a neighbor are left
// exactly where the upstream payload put them.
func resolveAmbiguousOrder(tags []string, stops map[string]model.Stop, routeShape [][2]float64) []string {
	if len(tags) < 2 || len(routeShape) == 0 {
		return tags
	}

	out := make([]string, len(tags))
	copy(out, tags)

	i := 0
	for i < len(out) {
		j := i + 1
		for j < len(out) && samePosition(stops, out[i], out[j]) {
			j++
		}
		if j-i >= 2 {
			run := make(map[string][2]float64, j-i)
			for _, tag := range out[i:j] {
				s := stops[tag]
				run[tag] = [2]float64{s.Lon, s.Lat}
			}
			ordered := shape.OrderStopsAlongShape(run, routeShape)
			copy(out[i:j], ordered)
		}
		i = j
	}
	return out
}

func samePosition(stops map[string]model.Stop, tagA, tagB string) bool {
	a, aok := stops[tagA]
	b, bok := stops[tagB]
	if !aok || !bok {
		return false
	}
	return a.Lat == b.Lat && a.Lon == b.Lon
}

func indexOf(list []string, tag string) int {
	for i, t := range list {
		if t == tag {
			return i
		}
	}
	return -1
}
