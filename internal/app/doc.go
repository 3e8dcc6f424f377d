// Package app runs the EMR file reader demonstration.
//
// Run wires configuration, the sample writer, the three line readers, the
// console reporter and the error log, then performs the steps in order:
//
//  1. Print the system header
//  2. Write the sample medical log file
//  3. Read it back line by line with line numbers
//  4. Read a file that does not exist
//  5. Ask for an optional path; read it line by line and, when it exists,
//     with record classification and as a whole file
//
// Every failed read is reported with guidance on the console and appended
// to the error log at the point of the read. Nothing a read does makes Run
// fail.
package app
