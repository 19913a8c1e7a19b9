// Package urlkey generates storefront URL keys from product and
// category names: Ukrainian Cyrillic is transliterated, Latin
// diacritics are folded, and the result is lowercased and hyphenated.
//
//	urlkey.Generate("Смартфон Samsung")  // "smartfon-samsung"
//	urlkey.Generate("Café au Lait 250g") // "cafe-au-lait-250g"
package urlkey
