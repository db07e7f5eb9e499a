package domain

// Bit widths for the packed class id. Editions, lands and build types are
// all small bounded integers, so the packing is collision-free.
const (
	classLandShift    = 16
	classEditionShift = 32
)

// PackClassID derives the class identity of (edition, land, buildType).
// The same coordinate always resolves to the same class, so repeated
// mints accumulate instead of creating new assets.
func PackClassID(edition, land, buildType int) int64 {
	return int64(edition)<<classEditionShift | int64(land)<<classLandShift | int64(buildType)
}

// UnpackClassID is the inverse of PackClassID.
func UnpackClassID(classID int64) (edition, land, buildType int) {
	edition = int(classID >> classEditionShift)
	land = int((classID >> classLandShift) & 0xFFFF)
	buildType = int(classID & 0xFFFF)
	return edition, land, buildType
}
