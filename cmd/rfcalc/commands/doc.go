// Package commands defines the rfcalc CLI, a terminal front end for the
// calculators and the Touchstone reader served by the API.
//
// Commands
//
//   - vswr        Match metrics from a VSWR, reflection coefficient or return loss
//   - atten       Resistor values of a matched Pi or Tee pad
//   - impedance   Series/parallel R/X conversion and component sizing
//   - power       dBm, watts and RMS volts across a system impedance
//   - touchstone  Parse a .s1p or .s2p file and print its summary
//
// Every command accepts --json to print the result as JSON instead of text.
package commands
