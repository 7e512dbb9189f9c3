package memory

import (
	"testing"

	"github.com/aretw0/zconv/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunHistoryStoreContract(t, NewStore())
}
