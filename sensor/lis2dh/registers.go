// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package lis2dh

import "periph.io/x/conn/v3/physic"

const (
	// DefaultAddress is the address with SA0 pulled high.
	DefaultAddress = 0x19

	whoAmIValue = 0x33
)

// Registers
const (
	regWhoAmI   = 0x0F
	regCtrl1    = 0x20
	regCtrl3    = 0x22
	regCtrl4    = 0x23
	regStatus   = 0x27
	regOutXL    = 0x28
	autoIncrAdd = 0x80
)

// CTRL_REG1
const (
	ctrl1XYZEnable = 0x07
	ctrl1ODRShift  = 4
)

// CTRL_REG3
const (
	ctrl3I1ZYXDA = 0x10
)

// CTRL_REG4
const (
	ctrl4BDU        = 0x80
	ctrl4FSShift    = 4
	ctrl4FSMask     = 0x30
	ctrl4HighResBit = 0x08
)

// STATUS_REG
const (
	statusZYXOR = 0x80
)

// odrTable maps the output data rates available in high resolution mode to
// the CTRL_REG1 ODR field.
var odrTable = map[physic.Frequency]uint8{
	1 * physic.Hertz:    0x1,
	10 * physic.Hertz:   0x2,
	25 * physic.Hertz:   0x3,
	50 * physic.Hertz:   0x4,
	100 * physic.Hertz:  0x5,
	200 * physic.Hertz:  0x6,
	400 * physic.Hertz:  0x7,
	1344 * physic.Hertz: 0x9,
}

type fullScale struct {
	bits uint8

	// milli-g per digit of the 12 bit high resolution output
	sensitivity float64
}

// fullScaleTable maps the range in g to the CTRL_REG4 FS field.
var fullScaleTable = map[int]fullScale{
	2:  {bits: 0x0, sensitivity: 1},
	4:  {bits: 0x1, sensitivity: 2},
	8:  {bits: 0x2, sensitivity: 4},
	16: {bits: 0x3, sensitivity: 12},
}
