// SPDX-License-Identifier: MIT

package compile

// OutputSample exposes outputSample to the external test package.
var OutputSample = outputSample
