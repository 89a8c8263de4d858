package strategy

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/evdnx/gostrat/logger"
	"github.com/evdnx/gostrat/metrics"
	"github.com/evdnx/gostrat/types"
)

// baseStrategy carries the plumbing shared by every signal generator:
// identity, structured logging, and metric/ID stamping on emit.
type baseStrategy struct {
	name string
	log  logger.Logger
}

func newBase(name string, log logger.Logger) baseStrategy {
	if log == nil {
		log = logger.NewNop()
	}
	return baseStrategy{name: name, log: log}
}

func (b *baseStrategy) Name() string { return b.name }

// emit stamps the signal with a time-sortable id, records metrics, and
// logs actionable decisions. Every signal a strategy returns passes
// through here.
func (b *baseStrategy) emit(sig types.Signal) types.Signal {
	sig.ID = newSignalID()
	metrics.SignalsEmitted.WithLabelValues(b.name, string(sig.Action)).Inc()
	if sig.Action != types.Hold {
		b.log.Info("signal_emitted",
			logger.String("strategy", b.name),
			logger.String("action", string(sig.Action)),
			logger.Float64("size", sig.Size),
			logger.String("reason", sig.Reason),
		)
	}
	return sig
}

func (b *baseStrategy) hold(reason string) types.Signal {
	return b.emit(types.HoldSignal(reason))
}

var (
	idMu   sync.Mutex
	idMono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand; ulid.Monotonic keeps ids generated
	// within the same millisecond lexicographically increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	idMono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

func newSignalID() string {
	idMu.Lock()
	defer idMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), idMono)
	if err != nil {
		return ""
	}
	return id.String()
}
