// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package registry

// built-in entry points of the device registry contract this client
// was written against; external schema files may extend or replace
// them via Load
func init() {
	Register("init", Schema{})

	Register("register_device", Schema{
		{Name: "device_id", Type: Scalar(TypeString), Default: "sensor-001"},
		{Name: "device_key", Type: ByteArray(32), Default: "e2cbf82c35bfcf0b43a216d9c176f93a84054bcb2ea2e80032584202b677a250"},
	})

	Register("remove_device", Schema{
		{Name: "device_id", Type: Scalar(TypeString), Default: "sensor-001"},
	})

	Register("set_paused", Schema{
		{Name: "paused", Type: Scalar(TypeBool), Default: "false"},
	})

	Register("set_fee", Schema{
		{Name: "fee", Type: Scalar(TypeU512), Default: "1000000000"},
	})

	Register("set_reward", Schema{
		{Name: "reward", Type: Scalar(TypeU256), Default: "250"},
	})

	Register("set_threshold", Schema{
		{Name: "threshold", Type: Scalar(TypeU64), Default: "3"},
	})

	Register("add_operators", Schema{
		{Name: "operators", Type: List(TypeString), Default: "operator-a,operator-b"},
	})

	Register("upgrade_mode", Schema{
		{Name: "mode", Type: Scalar(TypeU8), Default: "1"},
		{Name: "delay_blocks", Type: Scalar(TypeU32), Default: "100"},
	})
}
