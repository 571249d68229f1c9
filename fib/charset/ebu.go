/*
DESCRIPTION
  ebu.go holds the EBU Latin based repertoire used by character-set
  selector 0, the default label charset of most ensembles.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package charset

// ebuLatin maps the complete EBU Latin based repertoire of ETSI TS 101 756
// annex C to Unicode. Codes 0x00-0x1f carry accented letters rather than
// controls; 0x20-0x7e mostly coincides with ASCII.
var ebuLatin = [256]rune{
	// 0x00
	' ', 'Ę', 'Į', 'Ų', 'Ă', 'Ė', 'Ď', 'Ș', 'Ț', 'Ċ', ' ', ' ', 'Ġ', 'Ĺ', 'Ż', 'Ń',
	// 0x10
	'ą', 'ę', 'į', 'ų', 'ă', 'ė', 'ď', 'ș', 'ț', 'ċ', 'Ň', 'Ě', 'ġ', 'ĺ', 'ż', 'ń',
	// 0x20
	' ', '!', '"', '#', 'ł', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
	// 0x30
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '<', '=', '>', '?',
	// 0x40
	'@', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O',
	// 0x50
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', '[', 'Ů', ']', 'Ł', '_',
	// 0x60
	'Ą', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	// 0x70
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', '«', 'ů', '»', 'Ľ', 'Ħ',
	// 0x80
	'á', 'à', 'é', 'è', 'í', 'ì', 'ó', 'ò', 'ú', 'ù', 'Ñ', 'Ç', 'Ş', 'ß', '¡', 'Ÿ',
	// 0x90
	'â', 'ä', 'ê', 'ë', 'î', 'ï', 'ô', 'ö', 'û', 'ü', 'ñ', 'ç', 'ş', 'ğ', 'ı', 'ÿ',
	// 0xa0
	'Ķ', 'Ņ', '©', 'Ģ', 'Ğ', 'ě', 'ň', 'ő', 'Ő', '€', '£', '$', 'Ā', 'Ē', 'Ī', 'Ū',
	// 0xb0
	'ķ', 'ņ', 'Ļ', 'ģ', 'ļ', 'İ', 'ń', 'ű', 'Ű', '¿', 'ľ', '°', 'ā', 'ē', 'ī', 'ū',
	// 0xc0
	'Á', 'À', 'É', 'È', 'Í', 'Ì', 'Ó', 'Ò', 'Ú', 'Ù', 'Ř', 'Č', 'Š', 'Ž', 'Đ', 'Ŀ',
	// 0xd0
	'Â', 'Ä', 'Ê', 'Ë', 'Î', 'Ï', 'Ô', 'Ö', 'Û', 'Ü', 'ř', 'č', 'š', 'ž', 'đ', 'ŀ',
	// 0xe0
	'Ã', 'Å', 'Æ', 'Œ', 'ŷ', 'Ý', 'Õ', 'Ø', 'Þ', 'Ŋ', 'Ŕ', 'Ć', 'Ś', 'Ź', 'Ŧ', 'ð',
	// 0xf0
	'ã', 'å', 'æ', 'œ', 'ŵ', 'ý', 'õ', 'ø', 'þ', 'ŋ', 'ŕ', 'ć', 'ś', 'ź', 'ŧ', ' ',
}
