package model

// RouteType mirrors the route classification supplied by the upstream
// collector; it is never recomputed here.
type RouteType string

const (
	RouteTypeBus       RouteType = "Bus"
	RouteTypeRail      RouteType = "Rail"
	RouteTypeStreetcar RouteType = "Streetcar"
	RouteTypeExpress   RouteType = "Express"
	RouteTypeCableCar  RouteType = "CableCar"
	RouteTypeShuttle   RouteType = "Shuttle"
	RouteTypeOvernight RouteType = "Overnight"
	RouteTypeRapid     RouteType = "Rapid"
)

// RouteDefinition is the published topology of one route: its ordered
// inbound/outbound stop sequences and the set of stops that appear in
// either direction.
type RouteDefinition struct {
	RouteID       string
	Name          string
	Type          RouteType
	InboundStops  []string // ordered stop tags
	OutboundStops []string // ordered stop tags
	Stops         map[string]Stop
}

// StopByTag looks up a stop by its route-local tag.
func (r *RouteDefinition) StopByTag(tag string) (Stop, bool) {
	s, ok := r.Stops[tag]
	return s, ok
}

// IsInbound reports whether tag appears in the route's inbound sequence.
func (r *RouteDefinition) IsInbound(tag string) bool {
	return indexOf(r.InboundStops, tag) >= 0
}

// IsOutbound reports whether tag appears in the route's outbound sequence.
func (r *RouteDefinition) IsOutbound(tag string) bool {
	return indexOf(r.OutboundStops, tag) >= 0
}

// IndexInbound returns the position of tag in the inbound stop sequence,
// or -1 if absent.
func (r *RouteDefinition) IndexInbound(tag string) int {
	return indexOf(r.InboundStops, tag)
}

// IndexOutbound returns the position of tag in the outbound stop
// sequence, or -1 if absent.
func (r *RouteDefinition) IndexOutbound(tag string) int {
	return indexOf(r.OutboundStops, tag)
}

// StopList returns the route's ordered stop sequence for the given
// direction; DirectionNone yields nil.
func (r *RouteDefinition) StopList(dir Direction) []string {
	switch dir {
	case DirectionInbound:
		return r.InboundStops
	case DirectionOutbound:
		return r.OutboundStops
	default:
		return nil
	}
}

func indexOf(list []string, tag string) int {
	for i, t := range list {
		if t == tag {
			return i
		}
	}
	return -1
}

// deriveStopDirection classifies a stop tag as inbound, outbound, or
// none based on route direction membership (§3: a stop is inbound if
// it appears in any inbound direction list, else outbound, else none).
func deriveStopDirection(tag string, inbound, outbound []string) Direction {
	if indexOf(inbound, tag) >= 0 {
		return DirectionInbound
	}
	if indexOf(outbound, tag) >= 0 {
		return DirectionOutbound
	}
	return DirectionNone
}

// AssignStopDirections sets Direction on every stop in r.Stops from its
// membership in InboundStops/OutboundStops. Grounded on the Python
// original's extract_stops labeling loop.
func (r *RouteDefinition) AssignStopDirections() {
	for tag, s := range r.Stops {
		s.Direction = deriveStopDirection(tag, r.InboundStops, r.OutboundStops)
		r.Stops[tag] = s
	}
}
