// Package shared holds helpers used by more than one package of the module.
//
// The testutil subpackage provides a capturing slog handler and County
// Business Patterns fixtures (tables and on-disk CSV extracts) for tests:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := testutil.WriteCBPCSV(t, testutil.CountyRows())
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "computed")
//	}
package shared
