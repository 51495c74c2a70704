package identity

import "strings"

// knownCountries holds ISO 3166 codes and common spellings accepted for
// passport country and nationality checks. Comparison is case-insensitive.
var knownCountries = map[string]bool{
	"USA": true, "US": true, "UNITED STATES": true, "UNITED STATES OF AMERICA": true,
	"UK": true, "GB": true, "UNITED KINGDOM": true, "GREAT BRITAIN": true,
	"CANADA": true, "CA": true, "CAN": true,
	"AUSTRALIA": true, "AU": true, "AUS": true,
	"INDIA": true, "IN": true, "IND": true,
	"CHINA": true, "CN": true, "CHN": true,
	"JAPAN": true, "JP": true, "JPN": true,
	"GERMANY": true, "DE": true, "DEU": true,
	"FRANCE": true, "FR": true, "FRA": true,
	"ITALY": true, "IT": true, "ITA": true,
	"SPAIN": true, "ES": true, "ESP": true,
	"MEXICO": true, "MX": true, "MEX": true,
	"BRAZIL": true, "BR": true, "BRA": true,
	"RUSSIA": true, "RU": true, "RUS": true,
	"SOUTH AFRICA": true, "ZA": true, "ZAF": true,
}

// usStates holds the two-letter codes and full names of US states accepted
// for the license issuing-state check.
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true,
	"ALABAMA": true, "ALASKA": true, "ARIZONA": true, "ARKANSAS": true,
	"CALIFORNIA": true, "COLORADO": true, "CONNECTICUT": true, "DELAWARE": true,
	"FLORIDA": true, "GEORGIA": true, "HAWAII": true, "IDAHO": true,
	"ILLINOIS": true, "INDIANA": true, "IOWA": true, "KANSAS": true,
	"KENTUCKY": true, "LOUISIANA": true, "MAINE": true, "MARYLAND": true,
	"MASSACHUSETTS": true, "MICHIGAN": true, "MINNESOTA": true, "MISSISSIPPI": true,
	"MISSOURI": true, "MONTANA": true, "NEBRASKA": true, "NEVADA": true,
	"NEW HAMPSHIRE": true, "NEW JERSEY": true, "NEW MEXICO": true, "NEW YORK": true,
	"NORTH CAROLINA": true, "NORTH DAKOTA": true, "OHIO": true, "OKLAHOMA": true,
	"OREGON": true, "PENNSYLVANIA": true, "RHODE ISLAND": true, "SOUTH CAROLINA": true,
	"SOUTH DAKOTA": true, "TENNESSEE": true, "TEXAS": true, "UTAH": true,
	"VERMONT": true, "VIRGINIA": true, "WASHINGTON": true, "WEST VIRGINIA": true,
	"WISCONSIN": true, "WYOMING": true,
}

func recognizedCountry(s string) bool {
	return knownCountries[strings.ToUpper(strings.TrimSpace(s))]
}

func recognizedUSState(s string) bool {
	return usStates[strings.ToUpper(strings.TrimSpace(s))]
}
