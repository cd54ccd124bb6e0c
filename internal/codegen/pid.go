package codegen

// RecoHadronicIDs are the PDG codes of the standard hadrons, used as the
// "hadronic" multiparticle when running on reconstructed events.
var RecoHadronicIDs = []int{
	-20543, -20533, -20523, -20513, -20433, -20423, -20413, -20323, -20313, -20213,
	-10543, -10541, -10533, -10531, -10523, -10521, -10513, -10511, -10433, -10431,
	-10423, -10421, -10413, -10411, -10323, -10321, -10313, -10311, -10213, -10211,
	-5554, -5544, -5542, -5534, -5532, -5524, -5522, -5514, -5512, -5503,
	-5444, -5442, -5434, -5432, -5424, -5422, -5414, -5412, -5403, -5401,
	-5342, -5334, -5332, -5324, -5322, -5314, -5312, -5303, -5301, -5242,
	-5232, -5224, -5222, -5214, -5212, -5203, -5201, -5142, -5132, -5122,
	-5114, -5112, -5103, -5101, -4444, -4434, -4432, -4424, -4422, -4414,
	-4412, -4403, -4334, -4332, -4324, -4322, -4314, -4312, -4303, -4301,
	-4232, -4224, -4222, -4214, -4212, -4203, -4201, -4132, -4122, -4114,
	-4112, -4103, -4101, -3334, -3324, -3322, -3314, -3312, -3303, -3224,
	-3222, -3214, -3212, -3203, -3201, -3122, -3114, -3112, -3103, -3101,
	-2224, -2214, -2212, -2203, -2114, -2112, -2103, -2101, -1114, -1103,
	-545, -543, -541, -535, -533, -531, -525, -523, -521, -515,
	-513, -511, -435, -433, -431, -425, -423, -421, -415, -413,
	-411, -325, -323, -321, -315, -313, -311, -215, -213, -211,
	111, 113, 115, 130, 211, 213, 215, 221, 223, 225,
	310, 311, 313, 315, 321, 323, 325, 331, 333, 335,
	411, 413, 415, 421, 423, 425, 431, 433, 435, 441,
	443, 445, 511, 513, 515, 521, 523, 525, 531, 533,
	535, 541, 543, 545, 551, 553, 555, 1103, 1114, 2101,
	2103, 2112, 2114, 2203, 2212, 2214, 2224, 3101, 3103, 3112,
	3114, 3122, 3201, 3203, 3212, 3214, 3222, 3224, 3303, 3312,
	3314, 3322, 3324, 3334, 4101, 4103, 4112, 4114, 4122, 4132,
	4201, 4203, 4212, 4214, 4222, 4224, 4232, 4301, 4303, 4312,
	4314, 4322, 4324, 4332, 4334, 4403, 4412, 4414, 4422, 4424,
	4432, 4434, 4444, 5101, 5103, 5112, 5114, 5122, 5132, 5142,
	5201, 5203, 5212, 5214, 5222, 5224, 5232, 5242, 5301, 5303,
	5312, 5314, 5322, 5324, 5332, 5334, 5342, 5401, 5403, 5412,
	5414, 5422, 5424, 5432, 5434, 5442, 5444, 5503, 5512, 5514,
	5522, 5524, 5532, 5534, 5542, 5544, 5554, 10111, 10113, 10211,
	10213, 10221, 10223, 10311, 10313, 10321, 10323, 10331, 10333, 10411,
	10413, 10421, 10423, 10431, 10433, 10441, 10443, 10511, 10513, 10521,
	10523, 10531, 10533, 10541, 10543, 10551, 10553, 20113, 20213, 20223,
	20313, 20323, 20333, 20413, 20423, 20433, 20443, 20513, 20523, 20533,
	20543, 20553, 100443, 100553, 9900440, 9900441, 9900443, 9900551, 9900553, 9910441,
	9910551,
}

// RecoInvisibleIDs are the neutrinos and the lightest neutralino.
var RecoInvisibleIDs = []int{-16, -14, -12, 12, 14, 16, 1000022}
