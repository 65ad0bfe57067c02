package schema

// JSONObject is the common base of schemas declared in the inheritance style.
var JSONObject = MustProcess(Declare("JSONObject"))
