// File: utils/constants.go
package utils

import "time"

// OTPCachePrefix is the prefix used for Redis OTP code keys.
const OTPCachePrefix = "otp:"

// OTPCodeTTL is the time-to-live for a dispatched passcode.
const OTPCodeTTL = 5 * time.Minute

// PrefsSidebarPrefix is the prefix for the persisted sidebar-collapsed flag.
const PrefsSidebarPrefix = "prefs:sidebar:"
