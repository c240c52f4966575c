// converter-test runs convert4qmc regression tests.
//
// Each test is a directory holding one converter input and the golden
// output the converter is expected to reproduce. converter-test picks the
// converter mode from the directory, runs the converter inside it with
// "-nojastrow -prefix test", saves stdout.txt and stderr.txt, and compares
// test.wfnoj.xml with gold.wfnoj.xml (or test.orbs.h5 with gold.orbs.h5
// through h5diff). It prints "  pass" or "  FAIL" and exits 0 or 1.
//
// Example:
//
//	converter-test -exe ./bin/convert4qmc -h5diff /usr/bin/h5diff test_be_sto3g_gamess
//
// Relative executable paths such as ./bin/convert4qmc are resolved against
// the directory converter-test is started from, not the test directory.
//
// Test directory layout:
//
//	*.out or *.h5     converter input, exactly one per directory
//	orbitals          present for generic HDF5 orbital inputs
//	cmd_args.txt      extra converter arguments, one per line, '#' comments
//	expect_fail.txt   present when the converter is expected to fail
//	gold.wfnoj.xml    expected wavefunction
//	gold.orbs.h5      expected orbitals for dirac and -hdf5 runs
//
// Modes are chosen in this order: a file named orbitals selects generic
// (-orbitals), a directory name containing "dirac" selects dirac
// (-TargetState 14 -dirac), one containing "rmg" selects rmg (-rmg), and
// anything else is gamess (-gamess).
package main
