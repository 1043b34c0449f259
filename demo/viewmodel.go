package demo

import (
	"sync"

	"go.uber.org/multierr"

	"github.com/xraph/strata"
	"github.com/xraph/strata/logsink"
)

// ViewModelTag is the log tag of TestViewModel.
const ViewModelTag = "TestViewModel"

// TestViewModel logs the strings it is constructed with.
type TestViewModel struct {
	sink        logsink.Sink
	testString  string
	testString2 string
	cleared     bool
	mu          sync.Mutex
}

// NewTestViewModel creates the view model from the second constant and
// TestViewModel.string1.
func NewTestViewModel(sink logsink.Sink, testString, testString2 string) *TestViewModel {
	sink.Log(ViewModelTag, "init: Message in the string: "+testString)
	sink.Log(ViewModelTag, "init: Message in the string: "+testString2)

	return &TestViewModel{sink: sink, testString: testString, testString2: testString2}
}

// TestString returns the second application constant.
func (vm *TestViewModel) TestString() string {
	return vm.testString
}

// TestString2 returns TestViewModel.string1.
func (vm *TestViewModel) TestString2() string {
	return vm.testString2
}

// Cleared reports whether the owning view-model scope has ended.
func (vm *TestViewModel) Cleared() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.cleared
}

// Dispose is called when the view-model scope ends.
func (vm *TestViewModel) Dispose() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if !vm.cleared {
		vm.cleared = true
		vm.sink.Log(ViewModelTag, "onCleared")
	}

	return nil
}

// ViewModelStore keeps one view-model scope per owner and view-model key.
// Scopes outlive the activity scope of their owner and end on Clear.
type ViewModelStore struct {
	root   strata.Scope
	owners map[string][]storeEntry
	mu     sync.Mutex
}

type storeEntry struct {
	id    string
	scope strata.Scope
}

// NewViewModelStore creates a store whose scopes are children of root.
func NewViewModelStore(root strata.Scope) *ViewModelStore {
	return &ViewModelStore{root: root, owners: make(map[string][]storeEntry)}
}

// ViewModelOf returns a lazy view model of T owned by the screen of ctx.
// Nothing is constructed until Get.
func ViewModelOf[T any](ctx *ScreenContext, name string) *strata.Lazy[T] {
	key := strata.NewKey[T](name)

	return strata.NewLazyFunc(key.String(), func() (T, error) {
		scope, err := ctx.viewModels.scopeFor(ctx.Name(), key.String())
		if err != nil {
			var zero T
			return zero, err
		}

		return strata.ResolveKey(scope, key)
	})
}

func (s *ViewModelStore) scopeFor(owner, id string) (strata.Scope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.owners[owner] {
		if e.id == id {
			return e.scope, nil
		}
	}

	scope, err := s.root.BeginScope(ViewModelScope)
	if err != nil {
		return nil, err
	}

	s.owners[owner] = append(s.owners[owner], storeEntry{id: id, scope: scope})

	return scope, nil
}

// Len returns the number of live view models owned by owner.
func (s *ViewModelStore) Len(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.owners[owner])
}

// Clear ends every view-model scope of owner, newest first.
func (s *ViewModelStore) Clear(owner string) error {
	s.mu.Lock()
	entries := s.owners[owner]
	delete(s.owners, owner)
	s.mu.Unlock()

	var err error
	for i := len(entries) - 1; i >= 0; i-- {
		err = multierr.Append(err, entries[i].scope.End())
	}

	return err
}
