package frame

import (
	"math/rand"
	"regexp"
	"sync"

	"github.com/google/uuid"
)

// assemblyIDPattern matches the XXXNNN assembly identifier form:
// three uppercase letters followed by three digits.
var assemblyIDPattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

// ValidAssemblyID reports whether id has the XXXNNN form.
func ValidAssemblyID(id string) bool {
	return assemblyIDPattern.MatchString(id)
}

// NewEntityID returns a fresh unique ID for a node or panel.
func NewEntityID() string {
	return uuid.NewString()
}

var (
	idMu  sync.Mutex
	idRng *rand.Rand
)

// SeedAssemblyIDs makes assembly ID generation deterministic.
// Intended for tests; production code leaves the default source alone.
func SeedAssemblyIDs(seed int64) {
	idMu.Lock()
	defer idMu.Unlock()
	idRng = rand.New(rand.NewSource(seed))
}

// NewAssemblyID generates an identifier of the XXXNNN form.
// Collisions are possible across processes; stores treat Save as upsert
// so a collision overwrites rather than errors. Callers needing
// global uniqueness should check the store before first save.
func NewAssemblyID() string {
	idMu.Lock()
	defer idMu.Unlock()

	intn := rand.Intn
	if idRng != nil {
		intn = idRng.Intn
	}

	buf := make([]byte, 6)
	for i := 0; i < 3; i++ {
		buf[i] = byte('A' + intn(26))
	}
	for i := 3; i < 6; i++ {
		buf[i] = byte('0' + intn(10))
	}
	return string(buf)
}
