package demo

import (
	"github.com/xraph/strata"
	"github.com/xraph/strata/logsink"
	"github.com/xraph/strata/resources"
)

// AppModule provides the application-scope constants.
var AppModule = strata.NewModule("AppModule", strata.Singleton,
	func(c strata.Container) error {
		return strata.Provide[string](c, TestString.Name(), provideTestString)
	},
	func(c strata.Container) error {
		return strata.Provide[string](c, FirstNamedTestString.Name(), provideNamedTestString)
	},
	func(c strata.Container) error {
		return strata.Provide[string](c, SecondNamedTestString.Name(), provideAnotherNamedTestString)
	},
)

func provideTestString() string {
	return "This string has been injected from the AppModule"
}

func provideNamedTestString() string {
	return "This is a named test string"
}

func provideAnotherNamedTestString() string {
	return "This is another named test string"
}

// MainModule provides the activity-scope strings.
var MainModule = strata.NewModule("MainModule", ActivityScope,
	func(c strata.Container) error {
		return strata.Provide[string](c, MainActivityString1.Name(),
			strata.Inject[*ScreenContext](""),
			strata.Inject[string](FirstNamedTestString.Name()),
			provideString1,
		)
	},
	func(c strata.Container) error {
		return strata.Provide[string](c, MainActivityString2.Name(),
			strata.Inject[*ScreenContext](""),
			strata.Inject[string](SecondNamedTestString.Name()),
			provideString2,
		)
	},
)

func provideString1(ctx *ScreenContext, stringFromAppModule string) (string, error) {
	return Compose(ctx, resources.InjectedString, stringFromAppModule)
}

func provideString2(ctx *ScreenContext, stringFromAppModule string) (string, error) {
	return Compose(ctx, resources.ViewModelString, stringFromAppModule)
}

// ViewModelModule provides the view-model-scope string and the view model.
var ViewModelModule = strata.NewModule("TestViewModelModule", ViewModelScope,
	func(c strata.Container) error {
		return strata.Provide[string](c, TestViewModelString1.Name(),
			strata.Inject[*ApplicationContext](""),
			strata.Inject[string](FirstNamedTestString.Name()),
			provideViewModelString1,
		)
	},
	func(c strata.Container) error {
		return strata.Provide[*TestViewModel](c, "",
			strata.Inject[logsink.Sink](""),
			strata.Inject[string](SecondNamedTestString.Name()),
			strata.Inject[string](TestViewModelString1.Name()),
			NewTestViewModel,
		)
	},
)

func provideViewModelString1(app *ApplicationContext, stringFromAppModule string) (string, error) {
	return Compose(app, resources.ViewModelString, stringFromAppModule)
}

// EntryPointModule provides the screens the host can launch.
var EntryPointModule = strata.NewModule("EntryPoints", ActivityScope,
	func(c strata.Container) error {
		return strata.Seed[*ScreenContext](c, "", ActivityScope)
	},
	func(c strata.Container) error {
		return strata.Provide[*MainScreen](c, "",
			strata.Inject[*ScreenContext](""),
			strata.Inject[logsink.Sink](""),
			strata.Inject[string](FirstNamedTestString.Name()),
			strata.Inject[string](MainActivityString1.Name()),
			NewMainScreen,
		)
	},
)

// NewContainer builds the scope hierarchy, binds the application context
// and log sink, and installs every module.
func NewContainer(app *ApplicationContext, sink logsink.Sink, mw ...strata.Middleware) (strata.Container, error) {
	c := strata.New(
		strata.WithScope(ActivityScope, strata.Singleton),
		strata.WithScope(ViewModelScope, strata.Singleton),
		strata.WithMiddleware(mw...),
	)

	if err := strata.ProvideValue(c, "", app); err != nil {
		return nil, err
	}

	if err := strata.ProvideValue[logsink.Sink](c, "", sink); err != nil {
		return nil, err
	}

	if err := strata.Install(c, AppModule, MainModule, ViewModelModule, EntryPointModule); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}
