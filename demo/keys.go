// Package demo wires string constants through application, activity and
// view-model scopes and logs what each consumer receives.
//
// The application scope holds three constants. Each activity scope composes
// two strings from a localized resource and a constant; each view-model
// scope composes one. MainScreen and TestViewModel log the strings they are
// built with.
package demo

import (
	"github.com/xraph/strata"
	"github.com/xraph/strata/resources"
)

// Scope tags below the application (Singleton) scope. View models do not
// see activity bindings.
const (
	ActivityScope  strata.ScopeTag = "activity"
	ViewModelScope strata.ScopeTag = "viewmodel"
)

// Application-scope keys.
var (
	TestString            = strata.NewKey[string]("")
	FirstNamedTestString  = strata.NewKey[string]("FirstNamedTestString")
	SecondNamedTestString = strata.NewKey[string]("SecondNamedTestString")
)

// Activity-scope keys.
var (
	MainActivityString1 = strata.NewKey[string]("MainActivity.string1")
	MainActivityString2 = strata.NewKey[string]("MainActivity.string2")
)

// View-model-scope keys.
var (
	TestViewModelString1 = strata.NewKey[string]("TestViewModel.string1")
)

// Separator joins a resource string and an injected constant.
const Separator = " - "

// LayoutActivityMain is the layout MainScreen sets as its content view.
const LayoutActivityMain = "activity_main"

// Compose returns lookup's string for id followed by Separator and value.
func Compose(lookup resources.Lookup, id resources.ID, value string) (string, error) {
	res, err := lookup.String(id)
	if err != nil {
		return "", err
	}

	return res + Separator + value, nil
}
