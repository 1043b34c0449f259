package demo

import (
	"sync"

	"github.com/xraph/strata"
	"github.com/xraph/strata/logsink"
)

// ScreenTag is the log tag of MainScreen.
const ScreenTag = "MainActivity"

// MainScreen is the screen consumer. It is built in an activity scope.
type MainScreen struct {
	ctx                  *ScreenContext
	sink                 logsink.Sink
	stringFromModule     string
	stringFromMainModule string
	viewModel            *strata.Lazy[*TestViewModel]
	destroyed            bool
	mu                   sync.Mutex
}

// NewMainScreen creates the screen from the first constant and
// MainActivity.string1.
func NewMainScreen(ctx *ScreenContext, sink logsink.Sink, stringFromModule, stringFromMainModule string) *MainScreen {
	return &MainScreen{
		ctx:                  ctx,
		sink:                 sink,
		stringFromModule:     stringFromModule,
		stringFromMainModule: stringFromMainModule,
		viewModel:            ViewModelOf[*TestViewModel](ctx, ""),
	}
}

// OnCreate sets the layout, logs the injected strings and touches the view
// model so it exists.
func (s *MainScreen) OnCreate() error {
	s.ctx.SetContentView(LayoutActivityMain)

	s.sink.Log(ScreenTag, "onCreate: Injected string: "+s.stringFromModule)
	s.sink.Log(ScreenTag, "onCreate: Injected string: "+s.stringFromMainModule)

	_, err := s.viewModel.Get()

	return err
}

// Context returns the screen context.
func (s *MainScreen) Context() *ScreenContext {
	return s.ctx
}

// StringFromModule returns the first application constant.
func (s *MainScreen) StringFromModule() string {
	return s.stringFromModule
}

// StringFromMainModule returns MainActivity.string1.
func (s *MainScreen) StringFromMainModule() string {
	return s.stringFromMainModule
}

// ViewModel returns the screen's view model, creating it if needed.
func (s *MainScreen) ViewModel() (*TestViewModel, error) {
	return s.viewModel.Get()
}

// Destroyed reports whether the activity scope of the screen has ended.
func (s *MainScreen) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// Dispose is called when the activity scope ends.
func (s *MainScreen) Dispose() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
	return nil
}
