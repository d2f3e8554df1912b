package domain

// Kind describes one reference-entity collection. All kinds share the same
// store behavior; they differ only in collection name and whether records
// may reference a parent within the same collection.
type Kind struct {
	// Collection is the backend collection name and the path segment used
	// by the remote API.
	Collection string
	// Label is the human-readable singular name.
	Label string
	// HasParent marks kinds whose entities may nest one level under a
	// top-level entity of the same collection.
	HasParent bool
}

var (
	KindCategory        = Kind{Collection: "categories", Label: "category", HasParent: true}
	KindVC              = Kind{Collection: "vcs", Label: "VC"}
	KindDepartment      = Kind{Collection: "departments", Label: "department"}
	KindStatus          = Kind{Collection: "statuses", Label: "status"}
	KindEngagementLevel = Kind{Collection: "engagementLevels", Label: "engagement level"}
	KindBizDevPhase     = Kind{Collection: "bizDevPhases", Label: "biz-dev phase"}
)

// Kinds lists every known entity kind in presentation order.
func Kinds() []Kind {
	return []Kind{
		KindCategory,
		KindVC,
		KindDepartment,
		KindStatus,
		KindEngagementLevel,
		KindBizDevPhase,
	}
}

// KindByCollection resolves a collection name to its kind descriptor.
func KindByCollection(collection string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Collection == collection {
			return k, true
		}
	}
	return Kind{}, false
}
