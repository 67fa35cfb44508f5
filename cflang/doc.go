/*
Package cflang holds the types shared across the cflang module: the
diagnostic error type used by every subpackage, and a small position/span
type for scanner and parser error locations.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cflang
