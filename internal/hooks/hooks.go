package hooks

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// UserCreated is fired after a registration transaction commits.
type UserCreated struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type hook struct {
	name string
	fn   func(UserCreated) error
}

// Registry holds an ordered post-commit hook list. Each hook is fault
// isolated: an error or panic is logged and never reaches the caller
// or the remaining hooks.
type Registry struct {
	mu    sync.RWMutex
	hooks []hook
}

// Default is the process-wide registry; main wires hooks into it.
var Default = &Registry{}

func (r *Registry) Register(name string, fn func(UserCreated) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook{name: name, fn: fn})
}

// Fire runs every registered hook in order. Must be called only after
// the surrounding transaction has committed.
func (r *Registry) Fire(event UserCreated) {
	r.mu.RLock()
	hooks := make([]hook, len(r.hooks))
	copy(hooks, r.hooks)
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := runHook(h, event); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"hook":    h.name,
				"user_id": event.UserID,
			}).Error("post-commit hook failed")
		}
	}
}

func runHook(h hook, event UserCreated) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return h.fn(event)
}

// AuditLog records new accounts in the application log.
func AuditLog(event UserCreated) error {
	logrus.WithFields(logrus.Fields{
		"user_id": event.UserID,
		"email":   event.Email,
		"role":    event.Role,
	}).Info("new user registered")
	return nil
}
